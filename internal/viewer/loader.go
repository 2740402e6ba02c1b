package viewer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/account-viewer/internal/models"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

type accountFetcher interface {
	FetchAccount(ctx context.Context, accountID string) (*models.Account, error)
	FetchTransactions(ctx context.Context, accountID string) ([]models.Transaction, error)
}

type Loader struct {
	fetcher   accountFetcher
	accountID string
}

func NewLoader(fetcher accountFetcher, accountID string) *Loader {
	return &Loader{fetcher: fetcher, accountID: accountID}
}

func (l *Loader) AccountID() string { return l.accountID }

// Start marks both fetches as loading and runs them concurrently. A failure in
// one never cancels the other. The returned func blocks until both are done.
func (l *Loader) Start(ctx context.Context, st *State) (wait func()) {
	log := logger.FromContext(ctx).With("account_id", l.accountID)

	st.StartAccount()
	st.StartTransactions()

	var g errgroup.Group
	g.Go(func() error {
		account, err := l.fetcher.FetchAccount(ctx, l.accountID)
		if err != nil {
			log.Warn("account fetch failed", "error", err)
		}
		st.FinishAccount(account, err)
		return nil
	})
	g.Go(func() error {
		txs, err := l.fetcher.FetchTransactions(ctx, l.accountID)
		if err != nil {
			log.Warn("transactions fetch failed", "error", err)
		}
		st.FinishTransactions(txs, err)
		return nil
	})

	return func() { _ = g.Wait() }
}

// Load mounts a fresh state and returns it once both fetches have settled.
func (l *Loader) Load(ctx context.Context) Snapshot {
	st := NewState()
	l.Start(ctx, st)()
	return st.Snapshot()
}
