package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/account-viewer/internal/errs"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

const (
	OpGetAccount       = "get_account"
	OpListTransactions = "list_transactions"
)

type upstreamAdapter interface {
	GetAccount(ctx context.Context, accountID string) ([]byte, int, error)
	ListTransactions(ctx context.Context, accountID string) ([]byte, int, error)
}

type upstreamRecorder interface {
	RecordUpstream(operation string, err error, duration time.Duration)
}

// ForwardResult is an upstream answer passed back to the caller as-is.
type ForwardResult struct {
	Status int
	Body   []byte
}

type accountService struct {
	upstream upstreamAdapter
	metrics  upstreamRecorder
}

func NewAccountService(upstream upstreamAdapter, metrics upstreamRecorder) *accountService {
	return &accountService{
		upstream: upstream,
		metrics:  metrics,
	}
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (ForwardResult, error) {
	return s.forward(ctx, OpGetAccount, accountID, s.upstream.GetAccount)
}

func (s *accountService) ListTransactions(ctx context.Context, accountID string) (ForwardResult, error) {
	return s.forward(ctx, OpListTransactions, accountID, s.upstream.ListTransactions)
}

func (s *accountService) forward(
	ctx context.Context,
	op, accountID string,
	call func(context.Context, string) ([]byte, int, error),
) (ForwardResult, error) {
	if strings.TrimSpace(accountID) == "" {
		return ForwardResult{}, errs.NewValidationError("account id is required")
	}

	log := logger.FromContext(ctx).With("operation", op, "account_id", accountID)

	start := time.Now()
	body, status, err := call(ctx, accountID)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordUpstream(op, err, elapsed)
	}
	if err != nil {
		log.Debug("upstream forward failed", "upstream_status", status, "duration_ms", elapsed.Milliseconds())
		return ForwardResult{}, err
	}

	log.Info("upstream forward", "upstream_status", status, "bytes", len(body), "duration_ms", elapsed.Milliseconds())
	return ForwardResult{Status: status, Body: body}, nil
}
