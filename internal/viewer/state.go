package viewer

import (
	"strings"
	"sync"

	"github.com/GregMSThompson/account-viewer/internal/models"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is an immutable copy of the page data at one point in time.
type Snapshot struct {
	AccountStatus      Status
	TransactionsStatus Status
	Account            *models.Account
	Transactions       []models.Transaction
	AccountErr         string
	TransactionsErr    string
}

// Status derives the page status from both fetches. Nothing else toggles a
// loading flag, so one fetch finishing early cannot hide the other.
func (s Snapshot) Status() Status {
	a, t := s.AccountStatus, s.TransactionsStatus
	switch {
	case a == StatusIdle && t == StatusIdle:
		return StatusIdle
	case a == StatusLoading || t == StatusLoading || a == StatusIdle || t == StatusIdle:
		return StatusLoading
	case a == StatusError || t == StatusError:
		return StatusError
	default:
		return StatusSuccess
	}
}

func (s Snapshot) Errors() []string {
	var out []string
	if s.AccountStatus == StatusError && s.AccountErr != "" {
		out = append(out, s.AccountErr)
	}
	if s.TransactionsStatus == StatusError && s.TransactionsErr != "" {
		out = append(out, s.TransactionsErr)
	}
	return out
}

func (s Snapshot) Error() string {
	return strings.Join(s.Errors(), "; ")
}

// State collects the results of the two independent fetches.
type State struct {
	mu   sync.Mutex
	snap Snapshot
}

func NewState() *State {
	return new(State)
}

func (s *State) StartAccount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.AccountStatus = StatusLoading
	s.snap.AccountErr = ""
}

func (s *State) FinishAccount(account *models.Account, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snap.AccountStatus = StatusError
		s.snap.AccountErr = err.Error()
		return
	}
	s.snap.AccountStatus = StatusSuccess
	s.snap.Account = account
}

func (s *State) StartTransactions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.TransactionsStatus = StatusLoading
	s.snap.TransactionsErr = ""
}

func (s *State) FinishTransactions(txs []models.Transaction, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snap.TransactionsStatus = StatusError
		s.snap.TransactionsErr = err.Error()
		return
	}
	s.snap.TransactionsStatus = StatusSuccess
	s.snap.Transactions = txs
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	if snap.Transactions != nil {
		snap.Transactions = append([]models.Transaction(nil), snap.Transactions...)
	}
	return snap
}
