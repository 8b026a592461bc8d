package fifotax

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/fifotax/date"
)

// WarningKind classifies the data quality issues found while matching.
type WarningKind int

const (
	// Shortfall means a disposal exceeded the open lots of its asset. The
	// unmatched part was given a zero cost basis.
	Shortfall WarningKind = iota + 1
)

func (k WarningKind) String() string {
	switch k {
	case Shortfall:
		return "shortfall"
	default:
		return "unknown"
	}
}

func (k WarningKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// Warning is a non fatal issue attached to a processed transaction.
type Warning struct {
	Kind          WarningKind `json:"kind"`
	TransactionID string      `json:"transactionId"`
	Date          date.Date   `json:"date"`
	Asset         string      `json:"asset"`
	Requested     Quantity    `json:"requested"`
	Matched       Quantity    `json:"matched"`
	Unmatched     Quantity    `json:"unmatched"`
}

func (w Warning) String() string {
	switch w.Kind {
	case Shortfall:
		return fmt.Sprintf("%s: disposing %s %s but open lots only cover %s, %s %s have a zero cost basis",
			w.Date, w.Requested, w.Asset, w.Matched, w.Unmatched, w.Asset)
	default:
		return fmt.Sprintf("%s: %s on %s", w.Date, w.Kind, w.Asset)
	}
}
