package domain

import "time"

// LinkStatus is the validation state of a URL.
type LinkStatus string

// Link statuses.
const (
	LinkStatusPending      LinkStatus = "pending"
	LinkStatusValid        LinkStatus = "valid"
	LinkStatusInvalid      LinkStatus = "invalid"
	LinkStatusWarn         LinkStatus = "warn"
	LinkStatusInconclusive LinkStatus = "inconclusive"
)

// Hover returns the short label shown for the status.
func (s LinkStatus) Hover() string {
	switch s {
	case LinkStatusValid:
		return "Link active"
	case LinkStatusInvalid:
		return "Broken link"
	case LinkStatusWarn, LinkStatusInconclusive:
		return "Unverified"
	default:
		return "Pending validation"
	}
}

// Link is a URL found in a document.
type Link struct {
	URL   string `json:"url" yaml:"url"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// LinkCheck is the check result for one unique URL.
type LinkCheck struct {
	URL     string        `json:"url" yaml:"url"`
	Status  LinkStatus    `json:"status" yaml:"status"`
	Latency time.Duration `json:"latency" yaml:"latency"`
	Code    int           `json:"code,omitempty" yaml:"code,omitempty"`
}

// LinkReport aggregates link validation for a document.
type LinkReport struct {
	Links   []Link               `json:"links" yaml:"links"`
	Checks  map[string]LinkCheck `json:"checks" yaml:"checks"`
	Valid   int                  `json:"valid" yaml:"valid"`
	Invalid int                  `json:"invalid" yaml:"invalid"`
	Pending int                  `json:"pending" yaml:"pending"`
}

// Tally recomputes the status counts from Checks. Anything that is neither
// valid nor invalid counts as pending.
func (r *LinkReport) Tally() {
	r.Valid, r.Invalid, r.Pending = 0, 0, 0
	for _, c := range r.Checks {
		switch c.Status {
		case LinkStatusValid:
			r.Valid++
		case LinkStatusInvalid:
			r.Invalid++
		default:
			r.Pending++
		}
	}
}
