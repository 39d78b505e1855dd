package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"quickchat/internal/domain"
	"quickchat/internal/logging"
	"quickchat/internal/services/bootstrap"
	"quickchat/internal/services/directory"
	"quickchat/internal/services/login"
	"quickchat/internal/services/media"
	"quickchat/internal/services/register"
	"quickchat/internal/store"
	"quickchat/internal/transport"
	"quickchat/internal/ui"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config    Config
	Log       *slog.Logger
	Endpoints transport.Endpoints
	Transport *transport.HTTP
	KV        domain.KeyValueStore
	Sessions  *store.SessionStore
	Navigator *ui.Navigator
	Presenter ui.Presenter

	Login     domain.LoginService
	Register  domain.RegisterService
	Media     domain.MediaService
	Router    domain.Router
	Directory domain.DirectoryService

	closers []io.Closer
}

// NewWire constructs the dependency graph from cfg. Screen changes and
// outcomes are written to out and errOut; nil discards them.
func NewWire(ctx context.Context, cfg Config, out, errOut io.Writer) (*Wire, error) {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	log := logging.NewWithWriter(errOut, cfg.LogLevel, cfg.LogFormat)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	retry := transport.DefaultRetryPolicy()
	retry.MaxRetries = cfg.Retries
	tr := transport.NewHTTP(httpClient, transport.WithRetry(retry), transport.WithLogger(log))
	endpoints := transport.NewEndpoints(cfg.BaseURL)

	w := &Wire{
		Config:    cfg,
		Log:       log,
		Endpoints: endpoints,
		Transport: tr,
		Navigator: ui.NewNavigator(out),
		Presenter: ui.Presenter{Out: out, Err: errOut},
	}

	kv, err := w.openKV(ctx)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	w.KV = kv
	w.Sessions = store.NewSessionStore(kv)

	// High-level services
	mediaSvc := media.New(tr, endpoints, log.With("flow", "media"))
	w.Media = mediaSvc
	w.Login = login.New(tr, endpoints, w.Sessions, w.Navigator, log.With("flow", "login"))
	w.Register = register.New(tr, endpoints, mediaSvc, w.Navigator, log.With("flow", "register"))
	w.Router = bootstrap.New(w.Sessions, w.Navigator, log.With("flow", "bootstrap"))
	w.Directory = directory.New(tr, endpoints, log.With("flow", "directory"))

	log.Debug("wired", "base_url", endpoints.Base, "store", cfg.Store)
	return w, nil
}

// openKV selects the persisted backend named by Config.Store.
func (w *Wire) openKV(ctx context.Context) (domain.KeyValueStore, error) {
	switch w.Config.Store {
	case StoreMemory:
		return store.NewMemoryKV(), nil
	case StoreRedis:
		client, err := store.DialRedis(ctx, w.Config.RedisURL)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, client)
		return store.NewRedisKV(client, w.Config.Namespace), nil
	case StoreFile, "":
		if err := os.MkdirAll(w.Config.Home, 0o700); err != nil {
			return nil, fmt.Errorf("create home: %w", err)
		}
		return store.NewFileKV(w.Config.Home, w.Config.Passphrase), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, w.Config.Store)
	}
}

// Close releases backend connections.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c.Close())
	}
	w.closers = nil
	return errors.Join(errs...)
}
