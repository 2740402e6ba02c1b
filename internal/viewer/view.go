package viewer

import (
	"fmt"

	"github.com/GregMSThompson/account-viewer/internal/models"
	"github.com/GregMSThompson/account-viewer/pkg/helpers"
)

const defaultNickname = "Treasury Prime"

type Detail struct {
	Label string
	Value string
}

type Row struct {
	ID         string
	Anchor     string
	Title      string
	Date       string
	Type       string
	TypeClass  string
	Amount     string
	Positive   bool
	Expanded   bool
	ToggleHref string
	Details    []Detail
}

type Page struct {
	AccountID        string
	Status           Status
	Loading          bool
	Errors           []string
	Greeting         string
	Subtitle         string
	AccountNumber    string
	CurrentBalance   string
	AvailableBalance string
	Opened           string
	Count            int
	CountLabel       string
	Rows             []Row
}

func (p Page) HasTransactions() bool { return len(p.Rows) > 0 }

// HrefFunc turns the expansion a click would produce into a link.
type HrefFunc func(Expansion) string

// BuildPage turns a snapshot into display strings. It renders whatever data
// loaded even when the other fetch failed.
func BuildPage(accountID string, snap Snapshot, exp Expansion, href HrefFunc) Page {
	p := Page{
		AccountID: accountID,
		Status:    snap.Status(),
		Errors:    snap.Errors(),
	}
	p.Loading = p.Status == StatusLoading

	acct := snap.Account
	if acct == nil {
		acct = new(models.Account)
	}
	name := acct.Name
	if name == "" {
		name = "User"
	}
	nickname := acct.Nickname
	if nickname == "" {
		nickname = defaultNickname
	}
	p.Greeting = fmt.Sprintf("Hello, %s!", name)
	p.Subtitle = nickname + " Account"
	p.AccountNumber = orNA(acct.AccountNumber, MaskAccountNumber)
	p.CurrentBalance = orNA(acct.CurrentBalance, FormatUSD)
	p.AvailableBalance = orNA(acct.AvailableBalance, FormatUSD)
	p.Opened = orNA(acct.CreatedAt, FormatDate)

	p.Count = len(snap.Transactions)
	p.CountLabel = fmt.Sprintf("%d transactions", p.Count)
	for _, tx := range snap.Transactions {
		p.Rows = append(p.Rows, buildRow(tx, exp, href))
	}
	return p
}

func buildRow(tx models.Transaction, exp Expansion, href HrefFunc) Row {
	r := Row{
		ID:        tx.ID,
		Anchor:    RowAnchor(tx.ID),
		Title:     tx.Title(),
		Date:      FormatDate(tx.Date),
		Type:      tx.Type,
		TypeClass: TypeClass(tx.Type),
		Amount:    SignedAmount(tx),
		Positive:  tx.IsDeposit(),
		Expanded:  exp.IsExpanded(tx.ID),
	}
	if href != nil {
		r.ToggleHref = href(exp.Toggle(tx.ID))
	}

	r.Details = []Detail{
		{Label: "Transaction ID", Value: tx.ID},
		{Label: "Date & Time", Value: FormatDateTime(tx.ExtendedTimestamp)},
		{Label: "Balance After", Value: AbsUSD(tx.Balance)},
		{Label: "Fingerprint", Value: tx.Fingerprint},
	}
	optional := []struct {
		label string
		value *string
	}{
		{"ACH ID", tx.ACHID},
		{"Wire ID", tx.WireID},
		{"Check Number", tx.CheckNumber},
		{"Category", tx.Category},
	}
	for _, o := range optional {
		if v := helpers.Value(o.value); v != "" {
			r.Details = append(r.Details, Detail{Label: o.label, Value: v})
		}
	}
	return r
}
