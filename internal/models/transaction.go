package models

import (
	"encoding/json"
	"strings"
)

// Transaction mirrors the upstream transaction resource. Rail identifiers are
// null unless the transaction moved over that rail.
type Transaction struct {
	ID                       string          `json:"id"`
	Amount                   string          `json:"amount"`
	Balance                  string          `json:"balance"`
	Summary                  string          `json:"summary"`
	Desc                     string          `json:"desc"`
	Type                     string          `json:"type"`
	TypeSource               *string         `json:"type_source"`
	Category                 *string         `json:"category"`
	Date                     string          `json:"date"`
	ExtendedTimestamp        string          `json:"extended_timestamp"`
	ExtendedTimestampPrecise string          `json:"extended_timestamp_precise"`
	Fingerprint              string          `json:"fingerprint"`
	RelatedTransferIDs       []string        `json:"related_transfer_ids"`
	Userdata                 json.RawMessage `json:"userdata,omitempty"`

	ACHID             *string `json:"ach_id"`
	IncomingACHID     *string `json:"incoming_ach_id"`
	WireID            *string `json:"wire_id"`
	IncomingWireID    *string `json:"incoming_wire_id"`
	Wire              *string `json:"wire"`
	CheckID           *string `json:"check_id"`
	CheckNumber       *string `json:"check_number"`
	IssuedCheckID     *string `json:"issued_check_id"`
	BookID            *string `json:"book_id"`
	CardID            *string `json:"card_id"`
	BillpayPaymentID  *string `json:"billpay_payment_id"`
	FedNowID          *string `json:"fednow_id"`
	NetworkTransferID *string `json:"network_transfer_id"`
	TraceID           *string `json:"trace_id"`
}

const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
)

// IsDeposit reports whether the transaction credits the account.
func (t Transaction) IsDeposit() bool {
	return strings.EqualFold(t.Type, TypeDeposit)
}

// Title prefers the summary and falls back to the raw description.
func (t Transaction) Title() string {
	if t.Summary != "" {
		return t.Summary
	}
	return t.Desc
}
