package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/account-viewer/internal/errs"
	"github.com/GregMSThompson/account-viewer/pkg/helpers"
)

type fakeUpstream struct {
	body   []byte
	status int
	err    error
	calls  []string
}

func (f *fakeUpstream) GetAccount(ctx context.Context, accountID string) ([]byte, int, error) {
	f.calls = append(f.calls, "account:"+accountID)
	return f.body, f.status, f.err
}

func (f *fakeUpstream) ListTransactions(ctx context.Context, accountID string) ([]byte, int, error) {
	f.calls = append(f.calls, "transactions:"+accountID)
	return f.body, f.status, f.err
}

type fakeRecorder struct {
	ops  []string
	errs []error
}

func (f *fakeRecorder) RecordUpstream(operation string, err error, _ time.Duration) {
	f.ops = append(f.ops, operation)
	f.errs = append(f.errs, err)
}

func TestAccountServiceForwardsVerbatim(t *testing.T) {
	up := &fakeUpstream{body: []byte(`{"id":"acct_1"}`), status: http.StatusOK}
	rec := &fakeRecorder{}
	svc := NewAccountService(up, rec)

	res, err := svc.GetAccount(helpers.TestCtx(), "acct_1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, `{"id":"acct_1"}`, string(res.Body))

	_, err = svc.ListTransactions(helpers.TestCtx(), "acct_1")
	require.NoError(t, err)

	assert.Equal(t, []string{"account:acct_1", "transactions:acct_1"}, up.calls)
	assert.Equal(t, []string{OpGetAccount, OpListTransactions}, rec.ops)
	assert.Equal(t, []error{nil, nil}, rec.errs)
}

func TestAccountServicePropagatesUpstreamError(t *testing.T) {
	upErr := errs.NewUpstreamStatusError("treasury prime", http.StatusNotFound, "missing")
	up := &fakeUpstream{status: http.StatusNotFound, err: upErr}
	rec := &fakeRecorder{}
	svc := NewAccountService(up, rec)

	_, err := svc.ListTransactions(helpers.TestCtx(), "acct_1")
	assert.Same(t, upErr, err)
	require.Len(t, rec.errs, 1)
	assert.Error(t, rec.errs[0])
}

func TestAccountServiceRejectsBlankID(t *testing.T) {
	up := &fakeUpstream{}
	svc := NewAccountService(up, nil)

	_, err := svc.GetAccount(helpers.TestCtx(), "  ")
	var verr *errs.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, up.calls)
}
