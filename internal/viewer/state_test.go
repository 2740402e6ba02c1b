package viewer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotAggregateStatus(t *testing.T) {
	cases := []struct {
		account, txs Status
		want         Status
	}{
		{StatusIdle, StatusIdle, StatusIdle},
		{StatusLoading, StatusLoading, StatusLoading},
		{StatusSuccess, StatusLoading, StatusLoading},
		{StatusLoading, StatusSuccess, StatusLoading},
		{StatusError, StatusLoading, StatusLoading},
		{StatusSuccess, StatusIdle, StatusLoading},
		{StatusSuccess, StatusSuccess, StatusSuccess},
		{StatusError, StatusSuccess, StatusError},
		{StatusSuccess, StatusError, StatusError},
		{StatusError, StatusError, StatusError},
	}

	for _, tc := range cases {
		snap := Snapshot{AccountStatus: tc.account, TransactionsStatus: tc.txs}
		assert.Equal(t, tc.want, snap.Status(), "account=%s transactions=%s", tc.account, tc.txs)
	}
}

func TestStateFirstFinisherDoesNotClearLoading(t *testing.T) {
	st := NewState()
	st.StartAccount()
	st.StartTransactions()

	st.FinishAccount(sampleAccount(), nil)
	assert.Equal(t, StatusLoading, st.Snapshot().Status())

	st.FinishTransactions(nil, errors.New("boom"))
	snap := st.Snapshot()
	assert.Equal(t, StatusError, snap.Status())
	assert.Equal(t, []string{"boom"}, snap.Errors())
	assert.NotNil(t, snap.Account)
}

func TestSnapshotErrorsJoinBoth(t *testing.T) {
	st := NewState()
	st.StartAccount()
	st.StartTransactions()
	st.FinishAccount(nil, errors.New("account down"))
	st.FinishTransactions(nil, errors.New("transactions down"))

	assert.Equal(t, "account down; transactions down", st.Snapshot().Error())
}

func TestSnapshotIsACopy(t *testing.T) {
	st := NewState()
	st.StartTransactions()
	st.FinishTransactions(sampleTransactions(), nil)

	snap := st.Snapshot()
	snap.Transactions[0].ID = "mutated"
	assert.Equal(t, "ttx_dep", st.Snapshot().Transactions[0].ID)
}
