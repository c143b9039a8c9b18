package airtable_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/navikt/airtable-tasklists/pkg/airtable"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseID = "appTEST123"
	token  = "super-secret"
)

func TestClient_ListTables(t *testing.T) {
	testCases := []struct {
		name       string
		status     int
		body       string
		expect     *airtable.Tables
		expectErr  bool
		expectCode int
		expectType string
	}{
		{
			name:   "should return tables",
			status: http.StatusOK,
			body:   `{"tables":[{"id":"tbl1","name":"a","fields":[]},{"id":"tbl2","name":"b","fields":[]},{"id":"tbl3","name":"c","fields":[]}]}`,
			expect: &airtable.Tables{
				Tables: []airtable.Table{
					{ID: "tbl1", Name: "a", Fields: []airtable.Field{}},
					{ID: "tbl2", Name: "b", Fields: []airtable.Field{}},
					{ID: "tbl3", Name: "c", Fields: []airtable.Field{}},
				},
			},
		},
		{
			name:       "should return api error on unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"type":"AUTHENTICATION_REQUIRED","message":"Authentication required"}}`,
			expectErr:  true,
			expectCode: http.StatusUnauthorized,
			expectType: "AUTHENTICATION_REQUIRED",
		},
		{
			name:       "should return api error on not found",
			status:     http.StatusNotFound,
			body:       `{"error":"NOT_FOUND"}`,
			expectErr:  true,
			expectCode: http.StatusNotFound,
			expectType: "NOT_FOUND",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/meta/bases/"+baseID+"/tables", r.URL.Path)
				assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
				assert.Equal(t, http.MethodGet, r.Method)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, err := w.Write([]byte(tc.body))
				assert.NoError(t, err)
			}))
			defer testServer.Close()

			client := airtable.New(testServer.URL, token, false, http.DefaultClient, zerolog.Nop())
			got, err := client.ListTables(context.Background(), baseID)

			if !tc.expectErr {
				require.NoError(t, err)
				assert.Equal(t, tc.expect, got)

				return
			}

			require.Error(t, err)

			var apiErr *airtable.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.expectCode, apiErr.StatusCode)
			assert.Equal(t, tc.expectType, apiErr.Type)
			assert.JSONEq(t, tc.body, string(apiErr.Body))
		})
	}
}

func TestClient_CreateTable(t *testing.T) {
	precision := 1

	request := airtable.CreateTableRequest{
		Name: "Things",
		Fields: []airtable.Field{
			{Name: "Name", Type: airtable.FieldTypeSingleLineText},
			{
				Name: "Hours",
				Type: airtable.FieldTypeNumber,
				Options: &airtable.FieldOptions{
					Precision: &precision,
				},
			},
		},
	}

	testCases := []struct {
		name         string
		status       int
		body         string
		expect       *airtable.Table
		expectErr    bool
		expectReason airtable.Reason
	}{
		{
			name:   "should create table",
			status: http.StatusOK,
			body:   `{"id":"tblNEW","name":"Things","primaryFieldId":"fld1","fields":[{"id":"fld1","name":"Name","type":"singleLineText"},{"id":"fld2","name":"Hours","type":"number","options":{"precision":1}}]}`,
			expect: &airtable.Table{
				ID:             "tblNEW",
				Name:           "Things",
				PrimaryFieldID: "fld1",
				Fields: []airtable.Field{
					{ID: "fld1", Name: "Name", Type: airtable.FieldTypeSingleLineText},
					{ID: "fld2", Name: "Hours", Type: airtable.FieldTypeNumber, Options: &airtable.FieldOptions{Precision: &precision}},
				},
			},
		},
		{
			name:         "should report duplicate table",
			status:       http.StatusUnprocessableEntity,
			body:         `{"error":{"type":"DUPLICATE_TABLE_NAME","message":"Table name already exists"}}`,
			expectErr:    true,
			expectReason: airtable.ReasonDuplicateTable,
		},
		{
			name:         "should report invalid request",
			status:       http.StatusUnprocessableEntity,
			body:         `{"error":{"type":"INVALID_REQUEST_UNKNOWN","message":"Invalid request: parameter validation failed"}}`,
			expectErr:    true,
			expectReason: airtable.ReasonInvalidRequest,
		},
		{
			name:         "should report rate limiting",
			status:       http.StatusTooManyRequests,
			body:         `{"errors":[{"error":"RATE_LIMIT_REACHED"}]}`,
			expectErr:    true,
			expectReason: airtable.ReasonRateLimited,
		},
		{
			name:         "should report unknown on server error",
			status:       http.StatusBadGateway,
			body:         `<html>bad gateway</html>`,
			expectErr:    true,
			expectReason: airtable.ReasonUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/meta/bases/"+baseID+"/tables", r.URL.Path)
				assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, http.MethodPost, r.Method)

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)

				got := airtable.CreateTableRequest{}
				assert.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, request, got)

				w.WriteHeader(tc.status)
				_, err = w.Write([]byte(tc.body))
				assert.NoError(t, err)
			}))
			defer testServer.Close()

			client := airtable.New(testServer.URL, token, true, http.DefaultClient, zerolog.Nop())
			got, err := client.CreateTable(context.Background(), baseID, request)

			if !tc.expectErr {
				require.NoError(t, err)
				assert.Equal(t, tc.expect, got)

				return
			}

			var apiErr *airtable.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.expectReason, apiErr.Reason())
			assert.Equal(t, tc.body, string(apiErr.Body))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := testServer.URL
	testServer.Close()

	client := airtable.New(url, token, false, http.DefaultClient, zerolog.Nop())
	_, err := client.ListTables(context.Background(), baseID)
	require.Error(t, err)

	var netErr *airtable.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.NotNil(t, errors.Unwrap(netErr))
}

func TestClient_EmptyTokenIsForwarded(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer", strings.TrimSpace(r.Header.Get("Authorization")))

		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"AUTHENTICATION_REQUIRED","message":"Authentication required"}}`))
	}))
	defer testServer.Close()

	client := airtable.New(testServer.URL, "", false, http.DefaultClient, zerolog.Nop())
	_, err := client.ListTables(context.Background(), baseID)

	var apiErr *airtable.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, airtable.ReasonUnauthenticated, apiErr.Reason())
	assert.Equal(t, "request failed with status code 401: AUTHENTICATION_REQUIRED: Authentication required", apiErr.Error())
}

func TestAPIError_Details(t *testing.T) {
	testCases := []struct {
		name   string
		body   []byte
		expect any
	}{
		{
			name:   "json body",
			body:   []byte(`{"error":"NOT_FOUND"}`),
			expect: json.RawMessage(`{"error":"NOT_FOUND"}`),
		},
		{
			name:   "text body",
			body:   []byte("upstream connect error"),
			expect: "upstream connect error",
		},
		{
			name:   "no body",
			expect: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := &airtable.APIError{StatusCode: http.StatusInternalServerError, Body: tc.body}
			assert.Equal(t, tc.expect, e.Details())
		})
	}
}
