package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	appLog "punktual/internal/log"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultMaxBytes     = 1 << 20
)

var (
	// ErrTooLarge is returned when a remote ICS body exceeds the size cap.
	ErrTooLarge = errors.New("ics: remote body exceeds size limit")
	// ErrBlockedHost is returned when an import resolves to a loopback,
	// private, link-local or unspecified address.
	ErrBlockedHost = errors.New("ics: import host is not publicly routable")
)

// Fetcher downloads ICS payloads for import.
type Fetcher struct {
	// AllowPrivate permits loopback and private-network hosts.
	AllowPrivate bool

	client   *http.Client
	maxBytes int64
}

// NewFetcher creates a Fetcher. Zero values pick defaults.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	f := &Fetcher{maxBytes: maxBytes}

	// The check runs after DNS resolution on every dial, redirects included.
	dialer := &net.Dialer{Timeout: timeout, Control: f.checkAddr}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	f.client = &http.Client{Timeout: timeout, Transport: transport}
	return f
}

func (f *Fetcher) checkAddr(_, address string, _ syscall.RawConn) error {
	if f.AllowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if blockedIP(net.ParseIP(host)) {
		return fmt.Errorf("%w: %s", ErrBlockedHost, host)
	}
	return nil
}

func blockedIP(ip net.IP) bool {
	return ip == nil ||
		ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}

// Fetch GETs rawURL and returns its body. Only http and https are allowed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("ics: invalid import url %q", redactURL(rawURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/calendar, */*;q=0.5")

	appLog.Info("ics fetch start", "url", redactURL(rawURL))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ics: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics: fetch: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("ics: read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrTooLarge
	}

	appLog.Info("ics fetch success", "url", redactURL(rawURL), "bytes", len(body))
	return body, nil
}

// redactURL hides path and query, which often carry private tokens.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return "ics://...(redacted)"
	}
	return parsed.Scheme + "://" + parsed.Host + redactedSuffix
}
