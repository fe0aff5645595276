package attestr_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-assignment-service/internal/integration/attestr"
)

func TestClient_VerifyPAN(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkx/pan", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"valid":true,"name":"ASHA RAO"}`))
	}))
	defer srv.Close()

	c := attestr.NewClient(attestr.Config{BaseURL: srv.URL, APIKey: "secret-key"})
	res, err := c.VerifyPAN(context.Background(), "abcde1234f")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "ASHA RAO", res.Name)
	assert.Equal(t, "ABCDE1234F", got["pan"])
}

func TestClient_VerifyBank(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/finanx/acc", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"valid":false,"message":"Account does not exist"}`))
	}))
	defer srv.Close()

	c := attestr.NewClient(attestr.Config{BaseURL: srv.URL})
	res, err := c.VerifyBank(context.Background(), "001234567890", "hdfc0001234", false)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Account does not exist", res.Message)
	assert.Equal(t, "HDFC0001234", got["ifsc"])
	assert.Equal(t, false, got["fetchIfsc"])
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := attestr.NewClient(attestr.Config{BaseURL: srv.URL})
	for range 3 {
		_, err := c.VerifyPAN(context.Background(), "ABCDE1234F")
		require.Error(t, err)
	}

	_, err := c.VerifyPAN(context.Background(), "ABCDE1234F")
	assert.ErrorIs(t, err, attestr.ErrUnavailable)
	assert.Equal(t, 3, calls)
}
