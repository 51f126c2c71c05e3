package automation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApplicationSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/applications", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req SubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://jobs.example.com/42", req.JobURL)

		_ = json.NewEncoder(w).Encode(SubmitResult{
			Status:         StatusSubmitted,
			ConfirmationID: "conf-123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", time.Second)
	result, err := client.SubmitApplication(context.Background(), SubmitRequest{
		JobURL:  "https://jobs.example.com/42",
		Profile: json.RawMessage(`{"full_name":"Jane Doe"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, result.Status)
	assert.Equal(t, "conf-123", result.ConfirmationID)
}

func TestSubmitApplicationMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SubmitResult{
			Status:        StatusMissingFields,
			MissingFields: []string{"phone_number", "work_authorization"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	result, err := client.SubmitApplication(context.Background(), SubmitRequest{JobURL: "https://x"})
	require.Error(t, err)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"phone_number", "work_authorization"}, missing.Fields)
	assert.Equal(t, StatusMissingFields, result.Status)
}

func TestSubmitApplicationRetriesOn5xx(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(SubmitResult{Status: StatusSubmitted, ConfirmationID: "c"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	client.backoff = time.Millisecond
	result, err := client.SubmitApplication(context.Background(), SubmitRequest{JobURL: "https://x"})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, result.Status)
	assert.Equal(t, 3, calls)
}

func TestSubmitApplicationClientErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad job url", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	result, err := client.SubmitApplication(context.Background(), SubmitRequest{JobURL: "nonsense"})
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, 1, calls)
}
