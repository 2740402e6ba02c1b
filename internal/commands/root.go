package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/account-viewer/internal/buildinfo"
	"github.com/GregMSThompson/account-viewer/internal/config"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

// viewerFlags override the matching viewer config values when set.
type viewerFlags struct {
	configPath string
	accountID  string
	proxyURL   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := new(viewerFlags)

	rootCmd := &cobra.Command{
		Use:     "viewer",
		Short:   "Show a Treasury Prime account's balance and transactions",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", ".", "directory containing config.yml")
	rootCmd.PersistentFlags().StringVar(&flags.accountID, "account", "", "account id (overrides ACCOUNT_ID)")
	rootCmd.PersistentFlags().StringVar(&flags.proxyURL, "proxy", "", "proxy base url (overrides PROXY_URL)")

	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newShowCommand(flags))

	return rootCmd
}

func (f *viewerFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.accountID != "" {
		cfg.Viewer.AccountID = f.accountID
	}
	if f.proxyURL != "" {
		cfg.Viewer.ProxyURL = f.proxyURL
	}
	if err := cfg.ValidateViewer(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string, out io.Writer) *slog.Logger {
	return logger.New(level, func(l slog.Level) slog.Handler {
		return logger.NewCloudRunWriterHandler(out, l)
	})
}
