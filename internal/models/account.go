package models

import "encoding/json"

type Address struct {
	StreetLine1 string `json:"street_line_1"`
	StreetLine2 string `json:"street_line_2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
}

// Account mirrors the upstream account resource. Balances stay decimal strings.
type Account struct {
	ID               string          `json:"id"`
	AccountNumber    string          `json:"account_number"`
	AccountType      string          `json:"account_type"`
	Address          Address         `json:"address"`
	AvailableBalance string          `json:"available_balance"`
	CurrentBalance   string          `json:"current_balance"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	Name             string          `json:"name"`
	Nickname         string          `json:"nickname"`
	BankID           string          `json:"bank_id"`
	OrgID            string          `json:"org_id"`
	RoutingNumber    string          `json:"routing_number"`
	Funded           bool            `json:"funded"`
	Locked           bool            `json:"locked"`
	Lock             json.RawMessage `json:"lock,omitempty"`
	BusinessIDs      []string        `json:"business_ids"`
	PersonIDs        []string        `json:"person_ids"`
	PrimaryPersonID  string          `json:"primary_person_id"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}
