// Package transfer holds the tagged recipient-identifier type used by the
// peer-transfer flow. Classification is by strict format, decided before any
// database lookup: an identifier that is neither a well-formed account number
// nor a 10-digit phone number is rejected outright.
package transfer

import (
	"regexp"
	"strings"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
)

type TargetKind int

const (
	TargetAccountNumber TargetKind = iota + 1
	TargetPhoneNumber
)

// Target is a validated recipient identifier.
type Target struct {
	Kind  TargetKind
	Value string
}

var (
	accountNumberRe = regexp.MustCompile(`^AAPNA[0-9]{7}$`)
	phoneNumberRe   = regexp.MustCompile(`^[0-9]{10}$`)
)

// ParseTarget classifies a raw recipient identifier. Account numbers are
// case-insensitive on input and normalised to upper case.
func ParseTarget(raw string) (Target, error) {
	trimmed := strings.TrimSpace(raw)
	if upper := strings.ToUpper(trimmed); accountNumberRe.MatchString(upper) {
		return Target{Kind: TargetAccountNumber, Value: upper}, nil
	}
	if phoneNumberRe.MatchString(trimmed) {
		return Target{Kind: TargetPhoneNumber, Value: trimmed}, nil
	}
	return Target{}, bankerr.ErrInvalidRecipient
}
