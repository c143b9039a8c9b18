package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/http/httputil"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// AirtableResponse is a canned reply from the fake Airtable API.
type AirtableResponse struct {
	StatusCode int
	Body       string
}

// AirtableRequest is a request received by the fake Airtable API.
type AirtableRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          []byte
}

type fakeAirtable struct {
	t *testing.T

	mu       sync.Mutex
	list     AirtableResponse
	create   AirtableResponse
	requests []AirtableRequest
}

func (f *fakeAirtable) record(r *http.Request) {
	f.t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		f.t.Errorf("reading request body: %s", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, AirtableRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
}

func (f *fakeAirtable) reply(w http.ResponseWriter, res AirtableResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	_, _ = w.Write([]byte(res.Body))
}

// Requests returns the requests received so far.
func (f *fakeAirtable) Requests() []AirtableRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]AirtableRequest(nil), f.requests...)
}

// SetCreate changes the reply to table creation requests.
func (f *fakeAirtable) SetCreate(res AirtableResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.create = res
}

// NewFakeAirtable starts a server that mimics the table endpoints of the
// Airtable metadata API for a single base.
func NewFakeAirtable(t *testing.T, baseID string, list, create AirtableResponse) (*fakeAirtable, *httptest.Server) {
	f := &fakeAirtable{
		t:      t,
		list:   list,
		create: create,
	}

	tables := fmt.Sprintf("/v0/meta/bases/%s/tables", baseID)

	r := chi.NewRouter()
	r.Get(tables, func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		f.mu.Lock()
		res := f.list
		f.mu.Unlock()

		f.reply(w, res)
	})
	r.Post(tables, func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		f.mu.Lock()
		res := f.create
		f.mu.Unlock()

		f.reply(w, res)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.reply(w, AirtableResponse{StatusCode: http.StatusNotFound, Body: `{"error":"NOT_FOUND"}`})
	})

	return f, httptest.NewServer(r)
}

func Marshal(t *testing.T, v interface{}) []byte {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling: %s", err)
	}

	return b
}

func Unmarshal(t *testing.T, r io.Reader, v interface{}) {
	t.Helper()

	d, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading: %s", err)
	}

	err = json.Unmarshal(d, v)
	if err != nil {
		t.Fatalf("unmarshaling: %s", err)
	}
}

type TestRunner interface {
	Post(input any, path string, params ...string) TestRunnerStatus
	Get(path string, params ...string) TestRunnerStatus
}

type TestRunnerStatus interface {
	Debug(out io.Writer) TestRunnerStatus
	HasStatusCode(code int) TestRunnerEnder
}

type TestRunnerEnder interface {
	Value(into any)
	Expect(expect, into any, opts ...cmp.Option)
}

type testRunner struct {
	t *testing.T
	s *httptest.Server

	response *http.Response
}

func (r *testRunner) HasStatusCode(code int) TestRunnerEnder {
	r.t.Helper()

	if r.response.StatusCode != code {
		r.t.Errorf("expected status code %d, got %d", code, r.response.StatusCode)
	}

	return r
}

func (r *testRunner) Debug(out io.Writer) TestRunnerStatus {
	r.t.Helper()

	data, err := httputil.DumpRequest(r.response.Request, true)
	if err != nil {
		r.t.Fatalf("dumping request: %s", err)
	}

	_, err = io.Copy(out, bytes.NewReader(data))
	if err != nil {
		r.t.Fatalf("writing request: %s", err)
	}

	data, err = httputil.DumpResponse(r.response, true)
	if err != nil {
		r.t.Fatalf("dumping response: %s", err)
	}

	_, err = io.Copy(out, bytes.NewReader(data))
	if err != nil {
		r.t.Fatalf("writing response: %s", err)
	}

	return r
}

func (r *testRunner) Expect(expect, into any, opts ...cmp.Option) {
	r.t.Helper()

	defer r.response.Body.Close()

	Unmarshal(r.t, r.response.Body, into)
	diff := cmp.Diff(expect, into, opts...)
	if diff != "" {
		r.t.Errorf("unexpected response: %s", diff)
	}
}

func (r *testRunner) Value(into any) {
	r.t.Helper()

	defer r.response.Body.Close()

	Unmarshal(r.t, r.response.Body, into)
}

func (r *testRunner) parseQueryParams(params ...string) string {
	r.t.Helper()

	if len(params) == 0 {
		return ""
	}

	if len(params)%2 != 0 {
		r.t.Fatalf("invalid number of query parameters")
	}

	var p []string
	for i := 0; i < len(params); i += 2 {
		p = append(p, fmt.Sprintf("%s=%s", params[i], params[i+1]))
	}

	return "?" + strings.Join(p, "&")
}

func (r *testRunner) buildURL(path string, params ...string) string {
	return fmt.Sprintf("%s%s%s", r.s.URL, path, r.parseQueryParams(params...))
}

func (r *testRunner) Get(path string, params ...string) TestRunnerStatus {
	r.t.Helper()

	url := r.buildURL(path, params...)
	r.response = SendRequest(r.t, http.MethodGet, url, nil)

	return r
}

func (r *testRunner) Post(input any, path string, params ...string) TestRunnerStatus {
	r.t.Helper()

	var body io.Reader
	if input != nil {
		body = bytes.NewReader(Marshal(r.t, input))
	}

	url := r.buildURL(path, params...)
	r.response = SendRequest(r.t, http.MethodPost, url, body)

	return r
}

func NewTester(t *testing.T, s *httptest.Server) *testRunner {
	return &testRunner{
		t: t,
		s: s,
	}
}

func SendRequest(t *testing.T, method, url string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("creating request: %s", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("sending request: %s", err)
	}

	return resp
}

func TestRouter(log zerolog.Logger) chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		log.Error().Str("method", r.Method).Str("path", r.URL.Path).Msg("not found")
		w.WriteHeader(http.StatusNotFound)
	})

	return r
}
