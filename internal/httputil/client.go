// Package httputil builds the HTTP client used to talk to the GitHub API.
package httputil

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRedirects = 5
)

// Options configures NewClient.
type Options struct {
	// Timeout is the overall request timeout. Default: 30s.
	Timeout time.Duration

	// MaxRedirects is the maximum redirect depth. Default: 5.
	MaxRedirects int

	// AllowPrivateRedirects permits redirects to loopback, private and
	// link-local addresses, as needed for a GitHub Enterprise server on an
	// internal network.
	AllowPrivateRedirects bool
}

// NewClient creates an HTTP client for API requests.
//
// Redirects must stay on HTTPS and, unless AllowPrivateRedirects is set,
// must not resolve to an internal address. Renamed repositories are served
// through a redirect, so redirects cannot simply be disabled.
func NewClient(opts Options) *http.Client {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = defaultMaxRedirects
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   opts.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: opts.Timeout,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: redirectChecker(opts.MaxRedirects, opts.AllowPrivateRedirects, net.LookupIP),
	}
}

func redirectChecker(maxRedirects int, allowPrivate bool, lookup func(string) ([]net.IP, error)) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if req.URL.Scheme != "https" {
			return fmt.Errorf("redirect to non-HTTPS URL is not allowed: %s", req.URL)
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		if allowPrivate {
			return nil
		}

		host := req.URL.Hostname()
		ips := []net.IP{net.ParseIP(host)}
		if ips[0] == nil {
			var err error
			if ips, err = lookup(host); err != nil {
				return fmt.Errorf("failed to resolve redirect host %s: %w", host, err)
			}
		}
		for _, ip := range ips {
			if reason := blockedReason(ip); reason != "" {
				return fmt.Errorf("refusing redirect to %s: %s resolves to %s address %s", req.URL, host, reason, ip)
			}
		}
		return nil
	}
}

// blockedReason names the class of ip when redirects to it are refused,
// or returns "" when it is a public address.
func blockedReason(ip net.IP) string {
	switch {
	case ip.IsLoopback():
		return "loopback"
	case ip.IsPrivate():
		return "private"
	case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return "link-local"
	case ip.IsMulticast():
		return "multicast"
	case ip.IsUnspecified():
		return "unspecified"
	default:
		return ""
	}
}
