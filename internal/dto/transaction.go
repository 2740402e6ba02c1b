package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/GregMSThompson/account-viewer/internal/models"
)

// TransactionList accepts the upstream {"data": [...]} envelope as well as a
// bare array.
type TransactionList []models.Transaction

func (l *TransactionList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	if b[0] == '[' {
		var txs []models.Transaction
		if err := json.Unmarshal(b, &txs); err != nil {
			return err
		}
		*l = txs
		return nil
	}

	var envelope struct {
		Data *[]models.Transaction `json:"data"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}
	if envelope.Data == nil {
		return fmt.Errorf("transaction list: missing data field")
	}
	*l = *envelope.Data
	return nil
}
