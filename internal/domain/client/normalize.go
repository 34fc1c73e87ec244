package client

import "strings"

// Unknown is the synthetic bucket for absent or unparseable values.
const Unknown = "UNKNOWN"

// Months3 holds the three-letter month abbreviations used for the month
// facet, in calendar order.
var Months3 = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// UpperOrUnknown uppercases a free-text value, bucketing blanks as UNKNOWN.
func UpperOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	return strings.ToUpper(s)
}

// NormalizeStatus uppercases a raw status and collapses internal runs of
// whitespace to single spaces, so "follow   up" compares equal to
// "FOLLOW UP". Blanks bucket as UNKNOWN.
func NormalizeStatus(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown
	}
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// ParseStatus maps a raw value onto the fixed status set, falling back to
// DefaultStatus for anything unrecognized.
func ParseStatus(raw string) Status {
	s := Status(NormalizeStatus(raw))
	if ValidStatus(s) {
		return s
	}
	return DefaultStatus
}

// ParseTriState interprets boolean-like text as the file-seen flag. Yes-like
// values (yes, y, true, 1) map to TriYes, no-like values to TriNo, anything
// else to TriUnknown.
func ParseTriState(s string) TriState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return TriYes
	case "no", "n", "false", "0":
		return TriNo
	}
	return TriUnknown
}

// Digits strips every non-digit character from a contact number.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// IsEmpty reports whether a record carries no data beyond defaults: all
// optional fields blank, status at the default and file-seen not set to yes.
// Imports discard such rows before merging.
func (c Client) IsEmpty() bool {
	return strings.TrimSpace(c.Name) == "" &&
		strings.TrimSpace(c.Group) == "" &&
		strings.TrimSpace(c.ProposalDate) == "" &&
		strings.TrimSpace(c.Location) == "" &&
		strings.TrimSpace(c.Follow) == "" &&
		strings.TrimSpace(c.Proprietor) == "" &&
		strings.TrimSpace(c.Mediator) == "" &&
		strings.TrimSpace(c.ContactNo) == "" &&
		strings.TrimSpace(c.Reason) == "" &&
		c.Status == DefaultStatus &&
		c.FileSeen != TriYes
}
