// Package ledger holds the entities of the money ledger and the rules that turn
// raw caller input (names, amounts, type tokens, timestamps) into their
// canonical stored form.
package ledger

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tinoosan/moneyledger/internal/errs"
)

const (
	// DateTimeLayout is the persisted text form of a transaction timestamp.
	DateTimeLayout = "02-01-2006 15:04:05"
	// DateLayout labels summary periods.
	DateLayout = "02-01-2006"

	// AmountPlaces is the fixed number of decimal places kept for money.
	AmountPlaces = 2
	// maxAmountDigits bounds the significant digits of a rounded amount.
	maxAmountDigits = 28
)

// NormalizeName trims input and capitalizes it (first letter upper, rest lower).
// The result is the identity of account and category names, so "cash", " Cash "
// and "CASH" all become "Cash". field names the input in the error message.
func NormalizeName(input, field string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", errs.InvalidInput("%s cannot be empty.", field)
	}
	if !utf8.ValidString(s) {
		return "", errs.InvalidInput("%s must be valid UTF-8 text.", field)
	}
	return capitalize(s), nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ParseTransactionType accepts "income" or "expense" in any case, surrounded by whitespace.
func ParseTransactionType(input string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(input)))
	if !t.Valid() {
		return "", errs.InvalidInput("'%s' is not a valid transaction type.", input)
	}
	return t, nil
}

// ParseAmount parses a decimal string and rounds it to two places, halves away from zero.
// Amounts needing more than 28 digits at two places are rejected.
func ParseAmount(input string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Decimal{}, errs.InvalidInput("'%s' is not a valid amount.", input)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	// Digits left of the decimal point; checked before Round expands the exponent.
	intDigits := int64(d.NumDigits()) + int64(d.Exponent())
	if intDigits+AmountPlaces > maxAmountDigits {
		return decimal.Decimal{}, errs.InvalidInput("'%s' is not a valid amount.", input)
	}
	if intDigits < -AmountPlaces {
		return decimal.Zero, nil
	}
	return d.Round(AmountPlaces), nil
}

// ParseNonNegativeAmount is ParseAmount that also rejects values below zero.
func ParseNonNegativeAmount(input, field string) (decimal.Decimal, error) {
	d, err := ParseAmount(input)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errs.InvalidInput("%s cannot be negative.", field)
	}
	return d, nil
}

// FormatAmount renders d with exactly two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// FormatDateTime renders t in DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// ParseDateTime reads a DateTimeLayout timestamp as wall-clock time in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateTimeLayout, s, loc)
}
