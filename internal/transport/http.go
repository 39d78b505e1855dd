package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"quickchat/internal/domain"
	"quickchat/internal/util/json"
)

const (
	requestIDHeader = "X-Request-ID"
	mimeJSON        = "application/json"
	filePartName    = "file"
)

// HTTP is the concrete Transport over net/http.
type HTTP struct {
	HTTP   *http.Client
	Retry  RetryPolicy
	Logger *slog.Logger
}

// Option customises an HTTP transport.
type Option func(*HTTP)

// WithRetry enables bounded retries of network errors.
func WithRetry(p RetryPolicy) Option { return func(h *HTTP) { h.Retry = p } }

// WithLogger sets the logger used for request/response tracing.
func WithLogger(l *slog.Logger) Option { return func(h *HTTP) { h.Logger = l } }

// NewHTTP returns a transport using client, or http.DefaultClient when nil.
// Retries are off unless WithRetry is given.
func NewHTTP(client *http.Client, opts ...Option) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	h := &HTTP{HTTP: client, Logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SendJSON issues a JSON GET or POST. body is ignored for GET.
func (c *HTTP) SendJSON(ctx context.Context, method, url string, body any) (domain.Payload, error) {
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("transport: unsupported method %q", method)
	}

	var raw []byte
	if method == http.MethodPost {
		if body == nil {
			body = map[string]any{}
		}
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		raw = b
	}

	return c.do(ctx, method, url, func() (*http.Request, error) {
		var rdr io.Reader
		if raw != nil {
			rdr = bytes.NewReader(raw)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rdr)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mimeJSON)
		req.Header.Set("Accept", mimeJSON)
		return req, nil
	})
}

// SendMultipart posts file as the single "file" part of a multipart form.
// The boundary content type comes from the multipart writer.
func (c *HTTP) SendMultipart(ctx context.Context, url string, file domain.FileRef) (domain.Payload, error) {
	raw, contentType, err := buildMultipart(file)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodPost, url, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", mimeJSON)
		return req, nil
	})
}

// do sends the request built by newReq, retrying network errors per the
// retry policy, and classifies the response.
func (c *HTTP) do(
	ctx context.Context,
	method, url string,
	newReq func() (*http.Request, error),
) (domain.Payload, error) {
	reqID := uuid.NewString()
	log := c.Logger.With("request_id", reqID, "method", method, "url", url)

	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; ; attempt++ {
		var req *http.Request
		req, err = newReq()
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set(requestIDHeader, reqID)
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

		start := time.Now()
		resp, err = c.HTTP.Do(req)
		if err == nil {
			log.Debug("response received", "status", resp.StatusCode, "attempt", attempt, "took", time.Since(start))
			break
		}
		log.Debug("request failed", "attempt", attempt, "err", err)
		if ctx.Err() != nil || attempt >= c.Retry.MaxRetries {
			return nil, &domain.NetworkError{Method: method, URL: url, Err: err}
		}
		if werr := c.Retry.wait(ctx, attempt); werr != nil {
			return nil, &domain.NetworkError{Method: method, URL: url, Err: err}
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Method: method, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode/100 != 2 {
		return nil, &domain.TransportError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var out domain.Payload
	if err := json.UnmarshalNumber(body, &out); err != nil {
		return nil, &domain.DecodeError{URL: url, Body: string(body), Err: err}
	}
	if out == nil {
		// A literal JSON null is valid JSON but not an envelope.
		return nil, &domain.DecodeError{URL: url, Body: string(body), Err: errors.New("response body is null")}
	}
	return out, nil
}

// buildMultipart reads the file into a multipart body. The whole body is
// buffered so a retried request can be replayed.
func buildMultipart(file domain.FileRef) ([]byte, string, error) {
	path := LocalPath(file.URI)
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, filePartName, file.Name))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	hdr.Set("Content-Type", ct)

	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

// LocalPath turns a file:// URI into a filesystem path; other values are
// returned unchanged.
func LocalPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// Compile-time assertion that HTTP implements domain.Transport.
var _ domain.Transport = (*HTTP)(nil)
