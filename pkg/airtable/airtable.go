// Package airtable implements a small client for the Airtable metadata API, used
// for inspecting and creating tables in a base.
// - https://airtable.com/developers/web/api/introduction
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

const (
	DefaultAPIURL = "https://api.airtable.com/v0"
)

type Operations interface {
	ListTables(ctx context.Context, baseID string) (*Tables, error)
	CreateTable(ctx context.Context, baseID string, table CreateTableRequest) (*Table, error)
}

var _ Operations = &Client{}

type Client struct {
	client *http.Client
	apiURL string
	token  string
	debug  bool
	log    zerolog.Logger
}

func (c *Client) ListTables(ctx context.Context, baseID string) (*Tables, error) {
	tables := &Tables{}

	err := c.sendRequestAndDeserialize(ctx, http.MethodGet, tablesPath(baseID), nil, tables)
	if err != nil {
		return nil, err
	}

	return tables, nil
}

func (c *Client) CreateTable(ctx context.Context, baseID string, table CreateTableRequest) (*Table, error) {
	created := &Table{}

	err := c.sendRequestAndDeserialize(ctx, http.MethodPost, tablesPath(baseID), table, created)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func tablesPath(baseID string) string {
	return fmt.Sprintf("/meta/bases/%s/tables", url.PathEscape(baseID))
}

func (c *Client) sendRequestAndDeserialize(ctx context.Context, method, path string, body, into any) error {
	var data []byte

	if body != nil {
		var err error

		data, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling body: %w", err)
		}
	}

	req, err := c.newRequestWithHeaders(ctx, method, path, data)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{
			Method: method,
			Path:   path,
			Err:    err,
		}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("reading response: %w", err),
		}
	}

	if c.debug {
		c.log.Debug().Fields(map[string]any{
			"method":        method,
			"path":          path,
			"status":        res.StatusCode,
			"request_body":  string(data),
			"response_body": string(raw),
		}).Msg("airtable_request")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newAPIError(res.StatusCode, raw)
	}

	err = json.Unmarshal(raw, into)
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func (c *Client) newRequestWithHeaders(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	// An empty token is still sent, the API is the one to tell us it is missing.
	req.Header.Set("Authorization", "Bearer "+c.token)

	return req, nil
}

func New(apiURL, token string, debug bool, client *http.Client, log zerolog.Logger) *Client {
	return &Client{
		client: client,
		apiURL: apiURL,
		token:  token,
		debug:  debug,
		log:    log,
	}
}
