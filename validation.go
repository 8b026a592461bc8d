package fifotax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransaction is returned for transactions that break the input
// contract of Build.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Validate checks that tx can be processed by Build: a date, a known type, a
// canonical (upper case, trimmed) asset symbol, a positive amount and a non
// negative fee. Build itself never validates, callers filter transactions
// upstream.
func Validate(tx Transaction) error {
	var errs error
	if tx.Date.IsZero() {
		errs = errors.Join(errs, errors.New("missing date"))
	}
	if !tx.Type.IsValid() {
		errs = errors.Join(errs, fmt.Errorf("unknown type %d", tx.Type))
	}
	switch {
	case tx.Asset == "":
		errs = errors.Join(errs, errors.New("missing asset"))
	case tx.Asset != strings.ToUpper(strings.TrimSpace(tx.Asset)):
		errs = errors.Join(errs, fmt.Errorf("asset %q is not canonical, want %q", tx.Asset, strings.ToUpper(strings.TrimSpace(tx.Asset))))
	}
	if !tx.Amount.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("amount must be positive, got %s", tx.Amount))
	}
	if tx.Fee.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("fee must not be negative, got %s", tx.Fee.Decimal()))
	}
	if errs != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidTransaction, tx.Date, errs)
	}
	return nil
}

// ValidateAll splits txs into the valid transactions and an error joining
// the validation failure of every invalid one, identified by its index.
func ValidateAll(txs []Transaction) (valid []Transaction, err error) {
	valid = make([]Transaction, 0, len(txs))
	for i, tx := range txs {
		if verr := Validate(tx); verr != nil {
			err = errors.Join(err, fmt.Errorf("transaction #%d: %w", i+1, verr))
			continue
		}
		valid = append(valid, tx)
	}
	return valid, err
}
