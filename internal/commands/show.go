package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/account-viewer/internal/viewer"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

func newShowCommand(flags *viewerFlags) *cobra.Command {
	var expanded string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the account summary and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
			ctx := logger.ToContext(cmd.Context(), log)

			renderer, err := viewer.NewRenderer()
			if err != nil {
				return fmt.Errorf("parsing templates: %w", err)
			}
			client := viewer.NewProxyClient(cfg.Viewer.ProxyURL, cfg.Viewer.Timeout)
			snap := viewer.NewLoader(client, cfg.Viewer.AccountID).Load(ctx)

			page := viewer.BuildPage(cfg.Viewer.AccountID, snap, viewer.ExpandedRow(expanded), nil)
			if err := renderer.Text(cmd.OutOrStdout(), page); err != nil {
				return fmt.Errorf("rendering: %w", err)
			}

			// partial data is still printed; the exit status reports the failure
			if snap.Status() == viewer.StatusError {
				return errors.New(snap.Error())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&expanded, "expanded", "", "transaction id whose details are shown")

	return cmd
}
