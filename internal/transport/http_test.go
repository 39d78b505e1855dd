package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickchat/internal/domain"
	"quickchat/internal/transport"
	"quickchat/internal/util/json"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestSendJSON_EchoRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	payload := map[string]any{
		"success": true,
		"message": "hello",
		"data": map[string]any{
			"token": "tok123",
			"n":     json.Number("42"),
			"id":    json.Number("9007199254740993"),
			"tags":  []any{"a", "b", nil},
			"inner": map[string]any{"ok": false},
		},
	}

	tr := transport.NewHTTP(srv.Client())
	got, err := tr.SendJSON(context.Background(), http.MethodPost, srv.URL, payload)
	require.NoError(t, err)
	assert.Equal(t, domain.Payload(payload), got)
}

func TestSendJSON_GetHasNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		b, _ := io.ReadAll(r.Body)
		assert.Empty(t, b)
		_, _ = io.WriteString(w, `{"success":true,"message":"ok","data":[]}`)
	}))
	defer srv.Close()

	got, err := transport.NewHTTP(srv.Client()).SendJSON(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Response().Message)
}

func TestSendJSON_Non2xxKeepsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	_, err := transport.NewHTTP(srv.Client()).SendJSON(context.Background(), http.MethodPost, srv.URL, map[string]any{})
	require.Error(t, err)

	var httpErr *domain.TransportError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "<html>bad gateway</html>", httpErr.Body)

	var decodeErr *domain.DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}

func TestSendJSON_2xxInvalidJSONIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer srv.Close()

	_, err := transport.NewHTTP(srv.Client()).SendJSON(context.Background(), http.MethodGet, srv.URL, nil)
	var decodeErr *domain.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "not json", decodeErr.Body)
}

func TestSendJSON_ConnectionFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := transport.NewHTTP(nil).SendJSON(context.Background(), http.MethodPost, url, nil)
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "network", domain.ErrorKind(err))
}

func TestSendJSON_UnsupportedMethod(t *testing.T) {
	_, err := transport.NewHTTP(nil).SendJSON(context.Background(), http.MethodDelete, "http://example.invalid", nil)
	require.Error(t, err)
}

func TestRetry_NetworkErrorsOnly(t *testing.T) {
	var calls atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("connection reset by peer")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"success":true,"message":"ok"}`)),
			Header:     make(http.Header),
		}, nil
	})}

	tr := transport.NewHTTP(client, transport.WithRetry(transport.RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}))
	got, err := tr.SendJSON(context.Background(), http.MethodPost, "http://backend.test/api", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, got.Response().Success)
}

func TestRetry_GivesUpAfterMax(t *testing.T) {
	var calls atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("dial tcp: i/o timeout")
	})}

	tr := transport.NewHTTP(client, transport.WithRetry(transport.RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond}))
	_, err := tr.SendJSON(context.Background(), http.MethodGet, "http://backend.test/api", nil)
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetry_NeverRetriesHTTPErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := transport.NewHTTP(srv.Client(), transport.WithRetry(transport.RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond}))
	_, err := tr.SendJSON(context.Background(), http.MethodPost, srv.URL, nil)
	var httpErr *domain.TransportError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendMultipart_SingleFilePart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avatar.jpg")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Len(t, r.MultipartForm.File, 1)
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "image-bytes", string(b))
		assert.Equal(t, "avatar.jpg", hdr.Filename)
		assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"success":true,"message":"uploaded","data":{"fileUrl":"https://cdn/avatar.jpg"}}`)
	}))
	defer srv.Close()

	ref := domain.FileRef{URI: "file://" + path, Name: "avatar.jpg", ContentType: "application/pdf"}
	got, err := transport.NewHTTP(srv.Client()).SendMultipart(context.Background(), srv.URL, ref)
	require.NoError(t, err)
	v, ok := got.Response().DataString("fileUrl")
	require.True(t, ok)
	assert.Equal(t, "https://cdn/avatar.jpg", v)
}

func TestSendMultipart_MissingFile(t *testing.T) {
	_, err := transport.NewHTTP(nil).SendMultipart(context.Background(), "http://backend.test", domain.FileRef{URI: "/does/not/exist.png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEndpoints(t *testing.T) {
	e := transport.NewEndpoints("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080/api/v1/login", e.Login())
	assert.Equal(t, "http://localhost:8080/api/v1/register", e.Register())
	assert.Equal(t, "http://localhost:8080/api/v1/media/upload", e.Upload())
	assert.Equal(t, "http://localhost:8080/api/v1/users?limit=100&page=1", e.Users(1, 100))

	assert.Equal(t, transport.DefaultBaseURL, transport.NewEndpoints("").Base)
}
