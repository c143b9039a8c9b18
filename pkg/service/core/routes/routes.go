package routes

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/docker/cli/cli/command/formatter/tabwriter"
	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
)

type AddRoutesFn func(router chi.Router)

// Add registers the routes on r behind a permissive CORS policy, the service
// has no inbound authentication.
func Add(r chi.Router, routes ...AddRoutesFn) {
	cors := cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	r.Use(cors)

	for _, route := range routes {
		route(r)
	}
}

type route struct {
	method      string
	path        string
	middlewares int
}

// Print writes the routing table to out, sorted by path and method.
func Print(r chi.Router, out io.Writer) error {
	var all []route

	err := chi.Walk(r, func(method, path string, _ http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		all = append(all, route{
			method:      method,
			path:        path,
			middlewares: len(middlewares),
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("walking routes: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].path == all[j].path {
			return all[i].method < all[j].method
		}

		return all[i].path < all[j].path
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Method\tRoute\tMiddlewares")

	for _, rt := range all {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", rt.method, rt.path, rt.middlewares)
	}

	err = w.Flush()
	if err != nil {
		return err
	}

	return nil
}
