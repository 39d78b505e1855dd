package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quickchat/internal/app"
)

var (
	cfgFile    string
	home       string
	baseURL    string
	storeKind  string
	redisURL   string
	passphrase string
	logLevel   string
	timeout    time.Duration

	wire   *app.Wire
	cancel context.CancelFunc = func() {}
)

// Execute runs the CLI with ctx as the root context.
func Execute(ctx context.Context) error {
	defer func() { _ = release() }()
	return NewRootCmd().ExecuteContext(ctx)
}

// release closes the wire and cancels the command context. It is safe to
// call more than once.
func release() error {
	cancel()
	cancel = func() {}
	if wire == nil {
		return nil
	}
	err := wire.Close()
	wire = nil
	return err
}

// NewRootCmd builds the command tree with a fresh viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "quickchat",
		Short:        "QuickChat client session and account CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = release()
			cfg, err := app.LoadConfig(v, cfgFile)
			if err != nil {
				return err
			}

			// Every blocking call of the command shares one deadline.
			ctx := cmd.Context()
			if cfg.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				cmd.SetContext(ctx)
			}
			wire, err = app.NewWire(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return release()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./quickchat.yaml or ~/.quickchat/quickchat.yaml)")
	pf.StringVar(&home, "home", "", "state dir (default ~/.quickchat)")
	pf.StringVar(&baseURL, "base-url", "", "backend base URL")
	pf.StringVar(&storeKind, "store", "", "session backend: file, redis or memory")
	pf.StringVar(&redisURL, "redis-url", "", "redis URL for --store redis")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the file store")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.DurationVar(&timeout, "timeout", 0, "deadline for each command (default 30s)")

	for key, flag := range map[string]string{
		app.KeyHome:       "home",
		app.KeyBaseURL:    "base-url",
		app.KeyStore:      "store",
		app.KeyRedisURL:   "redis-url",
		app.KeyPassphrase: "passphrase",
		app.KeyLogLevel:   "log-level",
		app.KeyTimeout:    "timeout",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		startCmd(),
		loginCmd(),
		registerCmd(),
		uploadCmd(),
		usersCmd(),
		logoutCmd(),
		whoamiCmd(),
	)
	return root
}
