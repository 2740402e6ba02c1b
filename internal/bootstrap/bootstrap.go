package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	treasuryclient "github.com/GregMSThompson/account-viewer/internal/client/treasury"
	"github.com/GregMSThompson/account-viewer/internal/config"
	"github.com/GregMSThompson/account-viewer/internal/crypto"
	"github.com/GregMSThompson/account-viewer/internal/store"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

type Bootstrap struct {
	Log         *slog.Logger
	Credentials treasuryclient.Credentials
	closers     []func() error
}

// Run builds the logger and resolves the upstream credentials once, so the
// proxy never reads secrets per request.
func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	bs := new(Bootstrap)
	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	if err := cfg.ValidateProxy(); err != nil {
		return bs, err
	}

	var src sources
	if cfg.NeedsSecretManager() {
		client, err := InitSecretManager(ctx)
		if err != nil {
			return bs, fmt.Errorf("secret manager client: %w", err)
		}
		bs.closers = append(bs.closers, client.Close)
		src.secrets = store.NewCredentialStore(client, cfg.GCP.ProjectID)
	}
	if cfg.NeedsKMS() {
		client, err := InitKMS(ctx)
		if err != nil {
			return bs, fmt.Errorf("kms client: %w", err)
		}
		bs.closers = append(bs.closers, client.Close)
		src.kms = crypto.NewKMS(client, cfg.GCP.KMSKeyName)
	}

	creds, err := resolveCredentials(ctx, cfg.Upstream, src)
	if err != nil {
		return bs, err
	}
	bs.Credentials = creds
	bs.Log.Info("upstream credentials resolved", "source", src.describe())
	return bs, nil
}

func (bs *Bootstrap) Close() error {
	var errList []error
	for _, c := range bs.closers {
		if err := c(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
