package register_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickchat/internal/domain"
	"quickchat/internal/logging"
	"quickchat/internal/services/media"
	"quickchat/internal/services/register"
	"quickchat/internal/transport"
	"quickchat/internal/ui"
)

type backend struct {
	uploads   atomic.Int32
	registers atomic.Int32
	lastBody  atomic.Value

	uploadStatus int
	uploadReply  string
	registerMsg  string
}

func (b *backend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/media/upload", func(w http.ResponseWriter, r *http.Request) {
		b.uploads.Add(1)
		if b.uploadStatus != 0 {
			w.WriteHeader(b.uploadStatus)
		}
		_, _ = io.WriteString(w, b.uploadReply)
	})
	mux.HandleFunc("/api/v1/register", func(w http.ResponseWriter, r *http.Request) {
		b.registers.Add(1)
		raw, _ := io.ReadAll(r.Body)
		b.lastBody.Store(raw)
		reply, _ := json.Marshal(map[string]any{"success": true, "message": b.registerMsg})
		_, _ = w.Write(reply)
	})
	return mux
}

type fixture struct {
	svc *register.Service
	nav *ui.Navigator
	be  *backend
}

func newFixture(t *testing.T, be *backend) fixture {
	t.Helper()
	srv := httptest.NewServer(be.handler(t))
	t.Cleanup(srv.Close)

	tr := transport.NewHTTP(srv.Client())
	ep := transport.NewEndpoints(srv.URL)
	nav := ui.NewNavigator(nil)
	mediaSvc := media.New(tr, ep, logging.Discard())
	return fixture{
		svc: register.New(tr, ep, mediaSvc, nav, logging.Discard()),
		nav: nav,
		be:  be,
	}
}

func formWithImage(t *testing.T) domain.RegistrationForm {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ada.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o600))
	f := validForm()
	f.ProfileImage = domain.FileRef{URI: "file://" + path}
	return f
}

const uploadOK = `{"success":true,"message":"File uploaded","data":{"fileUrl":"https://cdn.test/ada.jpg"}}`

func TestSubmit_RegisteredNavigatesToLogin(t *testing.T) {
	f := newFixture(t, &backend{uploadReply: uploadOK, registerMsg: "User registered successfully"})

	out, err := f.svc.Submit(context.Background(), formWithImage(t))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRegistered, out.Kind)

	cur, ok := f.nav.Current()
	require.True(t, ok)
	assert.Equal(t, domain.RouteLogin, cur)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(f.be.lastBody.Load().([]byte), &sent))
	assert.Equal(t, map[string]any{
		"full_name":       "Ada Lovelace",
		"email":           "ada@example.com",
		"phone":           "0123456789",
		"password":        "secret1",
		"confirmPassword": "secret1",
		"profile_image":   "https://cdn.test/ada.jpg",
	}, sent)
	assert.Equal(t, int32(1), f.be.uploads.Load())
	assert.Equal(t, domain.StateIdle, f.svc.State())
}

func TestSubmit_InvalidNameMakesNoCalls(t *testing.T) {
	f := newFixture(t, &backend{uploadReply: uploadOK, registerMsg: "User registered successfully"})

	form := formWithImage(t)
	form.FullName = "A1"
	out, err := f.svc.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, out.Kind)
	assert.ErrorIs(t, out.Err, register.ErrInvalidName)
	assert.Zero(t, f.be.uploads.Load())
	assert.Zero(t, f.be.registers.Load())
	assert.Empty(t, f.nav.History())
}

func TestSubmit_UploadFailureSkipsRegister(t *testing.T) {
	cases := map[string]*backend{
		"http error": {uploadStatus: http.StatusInternalServerError, uploadReply: `{"message":"storage down"}`},
		"no data":    {uploadReply: `{"success":true,"message":"ok"}`},
		"bad json":   {uploadReply: `not json`},
		"empty data": {uploadReply: `{"success":true,"message":"ok","data":""}`},
		"false data": {uploadReply: `{"success":true,"message":"ok","data":false}`},
		"zero data":  {uploadReply: `{"success":true,"message":"ok","data":0}`},
	}
	for name, be := range cases {
		t.Run(name, func(t *testing.T) {
			be.registerMsg = "User registered successfully"
			f := newFixture(t, be)

			out, err := f.svc.Submit(context.Background(), formWithImage(t))
			require.NoError(t, err)
			assert.Equal(t, domain.OutcomeUploadFailed, out.Kind)

			var upErr *domain.UploadFailedError
			assert.ErrorAs(t, out.Err, &upErr)
			assert.Equal(t, int32(1), be.uploads.Load())
			assert.Zero(t, be.registers.Load())
		})
	}
}

func TestSubmit_DuplicateAccounts(t *testing.T) {
	for _, msg := range []string{
		"User with this email and phone already exists",
		"User with this email already exists",
		"User with this phone number already exists",
	} {
		t.Run(msg, func(t *testing.T) {
			f := newFixture(t, &backend{uploadReply: uploadOK, registerMsg: msg})

			out, err := f.svc.Submit(context.Background(), formWithImage(t))
			require.NoError(t, err)
			assert.Equal(t, domain.OutcomeDuplicateAccount, out.Kind)
			assert.Equal(t, msg, out.Message)
			assert.Empty(t, f.nav.History())
		})
	}
}

func TestSubmit_UnknownMessageIsGenericFailure(t *testing.T) {
	f := newFixture(t, &backend{uploadReply: uploadOK, registerMsg: "User created"})

	out, err := f.svc.Submit(context.Background(), formWithImage(t))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFailed, out.Kind)
	assert.Equal(t, domain.GenericFailureMessage, out.Message)
	assert.Equal(t, "unrecognized_response", domain.ErrorKind(out.Err))
}

func TestSubmit_ReferenceWithoutFileURLOmitsImage(t *testing.T) {
	f := newFixture(t, &backend{
		uploadReply: `{"success":true,"message":"ok","data":"https://cdn.test/raw.jpg"}`,
		registerMsg: "User registered successfully",
	})

	_, err := f.svc.Submit(context.Background(), formWithImage(t))
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(f.be.lastBody.Load().([]byte), &sent))
	_, has := sent["profile_image"]
	assert.False(t, has)
}

func TestSubmit_BusyWhileUploading(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/media/upload", func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = io.WriteString(w, uploadOK)
	})
	mux.HandleFunc("/api/v1/register", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"message":"User registered successfully"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tr := transport.NewHTTP(srv.Client())
	ep := transport.NewEndpoints(srv.URL)
	svc := register.New(tr, ep, media.New(tr, ep, logging.Discard()), ui.NewNavigator(nil), logging.Discard())
	form := formWithImage(t)

	done := make(chan domain.Outcome, 1)
	go func() {
		out, _ := svc.Submit(context.Background(), form)
		done <- out
	}()
	require.Eventually(t, func() bool { return svc.State() == domain.StateUploading }, time.Second, 5*time.Millisecond)

	_, err := svc.Submit(context.Background(), form)
	assert.ErrorIs(t, err, domain.ErrBusy)

	close(release)
	out := <-done
	assert.Equal(t, domain.OutcomeRegistered, out.Kind)
	assert.Equal(t, domain.StateIdle, svc.State())
}
