package viewer

import "net/url"

// Expansion tracks the single transaction row whose details are open.
type Expansion struct {
	id string
}

func ExpandedRow(id string) Expansion {
	return Expansion{id: id}
}

func (e Expansion) ID() string { return e.id }

func (e Expansion) IsExpanded(id string) bool {
	return e.id != "" && e.id == id
}

// Toggle opens id, closing any other row, or closes it when already open.
func (e Expansion) Toggle(id string) Expansion {
	if e.IsExpanded(id) {
		return Expansion{}
	}
	return Expansion{id: id}
}

// RowAnchor is the element id of a transaction row; toggle links target it.
func RowAnchor(id string) string {
	return "tx-" + url.PathEscape(id)
}
