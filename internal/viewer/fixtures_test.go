package viewer

import (
	"context"
	"errors"

	"github.com/GregMSThompson/account-viewer/internal/models"
	"github.com/GregMSThompson/account-viewer/pkg/helpers"
)

type fakeFetcher struct {
	account    *models.Account
	accountErr error
	txs        []models.Transaction
	txsErr     error
	// started receives one value per fetch before release is read.
	started chan string
	release chan struct{}
}

func (f *fakeFetcher) block(name string) {
	if f.started != nil {
		f.started <- name
	}
	if f.release != nil {
		<-f.release
	}
}

func (f *fakeFetcher) FetchAccount(_ context.Context, _ string) (*models.Account, error) {
	f.block("account")
	return f.account, f.accountErr
}

func (f *fakeFetcher) FetchTransactions(_ context.Context, _ string) ([]models.Transaction, error) {
	f.block("transactions")
	return f.txs, f.txsErr
}

func sampleAccount() *models.Account {
	return &models.Account{
		ID:               "acct_11m856tf1d13wn5",
		AccountNumber:    "864390221234",
		Name:             "Ada Lovelace",
		Nickname:         "Checking",
		CurrentBalance:   "12345.6",
		AvailableBalance: "-20",
		Currency:         "USD",
		Status:           "open",
		CreatedAt:        "2023-03-14T09:26:53Z",
	}
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:                "ttx_dep",
			Amount:            "1500.00",
			Balance:           "12345.60",
			Summary:           "Payroll",
			Type:              "deposit",
			Date:              "2024-01-05",
			ExtendedTimestamp: "2024-01-05T14:30:00Z",
			Fingerprint:       "fp-1",
			ACHID:             helpers.Ptr("ach_1"),
		},
		{
			ID:                "ttx_wd",
			Amount:            "-42.10",
			Balance:           "10845.60",
			Desc:              "COFFEE SHOP",
			Type:              "withdrawal",
			Date:              "2024-01-06",
			ExtendedTimestamp: "2024-01-06T08:05:00Z",
			Fingerprint:       "fp-2",
			CheckNumber:       helpers.Ptr("1042"),
			Category:          helpers.Ptr("dining"),
		},
		{
			ID:      "ttx_hold",
			Amount:  "5",
			Balance: "10840.60",
			Summary: "Card hold",
			Type:    "hold",
			Date:    "2024-01-07",
		},
	}
}

var errProxy = errors.New("HTTP 500: treasury prime returned HTTP 404")
