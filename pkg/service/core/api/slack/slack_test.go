package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/navikt/airtable-tasklists/pkg/errs"
	"github.com/navikt/airtable-tasklists/pkg/service/core/api/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackAPI_SendWebhookMessage(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		expectErr bool
	}{
		{
			name:   "delivered",
			status: http.StatusOK,
		},
		{
			name:      "rejected",
			status:    http.StatusForbidden,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			err := slack.NewSlackAPI(server.URL).SendWebhookMessage(context.Background(), "table created")

			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errs.KindIs(errs.IO, err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "table created", got["text"])
		})
	}
}
