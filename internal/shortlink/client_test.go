package shortlink

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punktual/internal/model"
)

func sampleLinks() model.LinkMap {
	lm := model.NewLinkMap()
	lm[model.Google] = "https://calendar.google.com/x"
	lm[model.Yahoo] = "https://calendar.yahoo.com/y"
	return lm
}

func TestCreateShortLinks_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req createRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "Launch", req.Title)
		assert.Equal(t, "u1", req.UserID)
		assert.Equal(t, "https://calendar.google.com/x", req.Links[model.Google])

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"links": map[string]string{"google": "https://pk.test/e/s1?cal=google"},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	got, err := c.CreateShortLinks(context.Background(), sampleLinks(), "Launch", "u1", "tok")
	require.NoError(t, err)

	assert.Len(t, got, len(model.PlatformIDs))
	assert.Equal(t, "https://pk.test/e/s1?cal=google", got[model.Google])
	assert.Equal(t, "https://calendar.yahoo.com/y", got[model.Yahoo])
	assert.Equal(t, "", got[model.Apple])
}

func TestCreateShortLinks_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"links":{}}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL, 0).CreateShortLinks(context.Background(), sampleLinks(), "x", "", "")
	require.NoError(t, err)
	assert.Equal(t, sampleLinks(), got)
}

func TestCreateShortLinks_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).CreateShortLinks(context.Background(), sampleLinks(), "x", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCreateShortLinks_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).CreateShortLinks(context.Background(), sampleLinks(), "x", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestCreateShortLinks_NotConfigured(t *testing.T) {
	_, err := NewClient("", 0).CreateShortLinks(context.Background(), sampleLinks(), "x", "", "")
	assert.True(t, errors.Is(err, ErrNotConfigured))

	var nilClient *Client
	assert.False(t, nilClient.Configured())
}
