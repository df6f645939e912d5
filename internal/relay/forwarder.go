// Package relay forwards client requests to a hosted scoring endpoint and hands the upstream
// response back unchanged.
package relay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// defaultContentType is reported when the upstream omits a Content-Type header.
const defaultContentType = "application/json"

// Options configures a Forwarder.
type Options struct {
	// UpstreamURL is the single endpoint every request is sent to.
	UpstreamURL string
	// Key is sent as a bearer credential. Empty omits the Authorization header.
	Key string
	// Timeout bounds one upstream round trip including the body read; 0 disables.
	Timeout time.Duration
	// Client overrides the HTTP client (tests).
	Client *http.Client
	Logger zerolog.Logger
}

// Response is the upstream reply as it is handed back to the caller.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forwarder posts request bodies to the upstream scoring endpoint.
type Forwarder struct {
	url     string
	key     string
	timeout time.Duration
	client  *http.Client
	log     zerolog.Logger
}

// New validates opts and constructs a Forwarder.
func New(opts Options) (*Forwarder, error) {
	u := strings.TrimSpace(opts.UpstreamURL)
	if u == "" {
		return nil, errors.New("relay: upstream url is required")
	}
	cli := opts.Client
	if cli == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Deadlines come from the request context, see Forward.
		cli = &http.Client{Transport: tr, Timeout: 0}
	}
	return &Forwarder{
		url:     u,
		key:     opts.Key,
		timeout: opts.Timeout,
		client:  cli,
		log:     opts.Logger,
	}, nil
}

// UpstreamURL returns the configured endpoint.
func (f *Forwarder) UpstreamURL() string { return f.url }

// Forward sends body to the upstream as-is and returns its status, content type and body.
// Transport and read failures are returned as upstream errors; non-2xx statuses are not errors.
func (f *Forwarder) Forward(ctx context.Context, body []byte) (*Response, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return nil, upstreamError{op: "build request", err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if f.key != "" {
		req.Header.Set("Authorization", "Bearer "+f.key)
	}
	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues("error").Inc()
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, upstreamError{op: "post", err: err}
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues("error").Inc()
		return nil, upstreamError{op: "read body", err: err}
	}
	upstreamRequestsTotal.WithLabelValues(statusClass(resp.StatusCode)).Inc()
	upstreamDuration.Observe(time.Since(start).Seconds())
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = defaultContentType
	}
	f.log.Debug().
		Int("status", resp.StatusCode).
		Int("req_bytes", len(body)).
		Int("resp_bytes", len(b)).
		Dur("dur", time.Since(start)).
		Msg("relay upstream")
	return &Response{StatusCode: resp.StatusCode, ContentType: ct, Body: b}, nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
