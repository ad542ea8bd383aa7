package ics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httptest listens on loopback, so these tests opt in to private hosts.
func localFetcher(maxBytes int64) *Fetcher {
	f := NewFetcher(0, maxBytes)
	f.AllowPrivate = true
	return f
}

func TestFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("Accept"), "text/calendar")
			_, _ = w.Write([]byte(sampleICS))
		}))
		t.Cleanup(srv.Close)

		body, err := localFetcher(0).Fetch(context.Background(), srv.URL+"/cal.ics?token=secret")
		require.NoError(t, err)
		assert.Equal(t, sampleICS, string(body))
	})

	t.Run("non-OK status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		_, err := localFetcher(0).Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("too large", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		}))
		t.Cleanup(srv.Close)

		_, err := localFetcher(16).Fetch(context.Background(), srv.URL)
		assert.True(t, errors.Is(err, ErrTooLarge))
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		_, err := NewFetcher(0, 0).Fetch(context.Background(), "file:///etc/passwd")
		assert.Error(t, err)
	})
}

func TestFetch_BlocksPrivateHosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach a loopback server")
	}))
	t.Cleanup(srv.Close)

	_, err := NewFetcher(0, 0).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlockedHost), "got %v", err)

	for _, host := range []string{"http://169.254.169.254/latest", "http://10.0.0.1/x.ics", "http://[::1]/x.ics"} {
		_, err := NewFetcher(0, 0).Fetch(context.Background(), host)
		assert.True(t, errors.Is(err, ErrBlockedHost), "%s: %v", host, err)
	}
}

func TestBlockedIP(t *testing.T) {
	for _, ip := range []string{"127.0.0.1", "10.1.2.3", "192.168.0.1", "172.16.5.5", "169.254.169.254", "::1", "fe80::1", "fd00::1", "0.0.0.0"} {
		assert.True(t, blockedIP(net.ParseIP(ip)), ip)
	}
	for _, ip := range []string{"93.184.216.34", "2606:2800:220:1::1"} {
		assert.False(t, blockedIP(net.ParseIP(ip)), ip)
	}
	assert.True(t, blockedIP(nil))
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://example.com/...(redacted)", redactURL("https://example.com/private/x.ics?token=abc"))
	assert.Equal(t, "ics://...(redacted)", redactURL("not a url"))
}
