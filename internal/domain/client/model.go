package client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Status is the workflow state of a tracked client.
type Status string

const (
	StatusRejected    Status = "REJECTED"
	StatusPayment     Status = "PAYMENT"
	StatusPending     Status = "PENDING"
	StatusFollowUp    Status = "FOLLOW UP"
	StatusEnquired    Status = "ENQUIRED"
	StatusTryInFuture Status = "TRY IN FUTURE"
	StatusUnknown     Status = "UNKNOWN"
)

// DefaultStatus is applied when an incoming value is not one of the known
// statuses.
const DefaultStatus = StatusRejected

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{
		StatusRejected,
		StatusPayment,
		StatusPending,
		StatusFollowUp,
		StatusEnquired,
		StatusTryInFuture,
		StatusUnknown,
	}
}

// ValidStatus reports whether s is one of the fixed statuses.
func ValidStatus(s Status) bool {
	for _, v := range Statuses() {
		if v == s {
			return true
		}
	}
	return false
}

// ID identifies a client record. The server assigns it; the client treats it
// as opaque. It unmarshals from either a JSON string or a JSON number since
// the API has served both.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// TriState is the file-seen flag: yes, no, or unknown when the server sent
// null or something unparseable.
type TriState int

const (
	TriUnknown TriState = iota
	TriYes
	TriNo
)

func (t TriState) String() string {
	switch t {
	case TriYes:
		return "YES"
	case TriNo:
		return "NO"
	}
	return "UNKNOWN"
}

// Bool collapses the tri-state to a boolean, treating unknown as false.
func (t TriState) Bool() bool { return t == TriYes }

// TriFromBool maps a boolean onto the tri-state.
func TriFromBool(b bool) TriState {
	if b {
		return TriYes
	}
	return TriNo
}

// UnmarshalJSON accepts true/false, "YES"/"NO" (any casing), 1/0 and null.
func (t *TriState) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null", `""`:
		*t = TriUnknown
		return nil
	case "true", "1":
		*t = TriYes
		return nil
	case "false", "0":
		*t = TriNo
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = TriUnknown
		return nil
	}
	*t = ParseTriState(s)
	return nil
}

// MarshalJSON writes the wire form the API expects: "YES", "NO" or null.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriYes:
		return []byte(`"YES"`), nil
	case TriNo:
		return []byte(`"NO"`), nil
	}
	return []byte("null"), nil
}

// Client mirrors the reject-list API representation of one tracked client.
// Free-text fields are empty strings when the server sent null.
type Client struct {
	ID           ID       `json:"id"`
	Group        string   `json:"group"`
	Name         string   `json:"name"`
	ProposalDate string   `json:"proposal_date"`
	Location     string   `json:"location"`
	Follow       string   `json:"follow"`
	Proprietor   string   `json:"proprietor"`
	Mediator     string   `json:"mediator"`
	ContactNo    string   `json:"contact_no"`
	FileSeen     TriState `json:"file_seen"`
	Status       Status   `json:"status"`
	Reason       string   `json:"reason"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

// proposalTime parses the proposal date, accepting a bare date or an RFC3339
// timestamp.
func (c Client) proposalTime() (time.Time, bool) {
	s := c.ProposalDate
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Year returns the four-digit proposal year, or "UNKNOWN" when the date is
// absent or unparseable.
func (c Client) Year() string {
	t, ok := c.proposalTime()
	if !ok {
		return Unknown
	}
	return strconv.Itoa(t.Year())
}

// Month3 returns the three-letter proposal month (JAN..DEC), or "UNKNOWN".
func (c Client) Month3() string {
	t, ok := c.proposalTime()
	if !ok {
		return Unknown
	}
	return Months3[int(t.Month())-1]
}

// ProposalDMY formats the proposal date as dd/mm/yyyy for display and copy
// text, or "UNKNOWN" when unparseable.
func (c Client) ProposalDMY() string {
	t, ok := c.proposalTime()
	if !ok {
		return Unknown
	}
	return t.Format("02/01/2006")
}
