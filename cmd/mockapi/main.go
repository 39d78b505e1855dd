package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quickchat/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MOCKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Run an in-memory QuickChat backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(v.GetString("log-level"), v.GetString("log-format"))
			cfg := serverConfig{
				PublicURL: v.GetString("public-url"),
				Secret:    []byte(v.GetString("secret")),
				TokenTTL:  v.GetDuration("token-ttl"),
			}
			if cfg.PublicURL == "" {
				cfg.PublicURL = "http://" + v.GetString("addr")
			}
			app := newServer(cfg, log)

			errc := make(chan error, 1)
			go func() { errc <- app.Listen(v.GetString("addr")) }()
			log.Info("mockapi listening", "addr", v.GetString("addr"))

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
				return app.ShutdownWithTimeout(5 * time.Second)
			}
		},
	}

	f := cmd.Flags()
	f.String("addr", "127.0.0.1:8080", "listen address")
	f.String("public-url", "", "base URL used in returned file URLs (default http://<addr>)")
	f.String("secret", "quickchat-dev-secret", "HS256 signing key for issued tokens")
	f.Duration("token-ttl", 24*time.Hour, "lifetime of issued tokens")
	f.String("log-level", "info", "debug, info, warn or error")
	f.String("log-format", "text", "text or json")
	_ = v.BindPFlags(f)
	return cmd
}
