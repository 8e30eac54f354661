// Status lifecycle for a candidature:
//
//	identified ──► letter_generated ──► applied ──► response_received ──► interview ──► accepted
//	                                                                          │
//	                                                                          └──► refused
//
// accepted and refused are terminal. The update endpoint accepts any valid
// status value; the table below only describes the canonical flow and which
// service actions produce which transition.
package candidatures

import "fmt"

// Status is the lifecycle position of a candidature.
type Status string

const (
	StatusIdentified       Status = "identified"
	StatusLetterGenerated  Status = "letter_generated"
	StatusApplied          Status = "applied"
	StatusResponseReceived Status = "response_received"
	StatusInterview        Status = "interview"
	StatusRefused          Status = "refused"
	StatusAccepted         Status = "accepted"
)

var allStatuses = []Status{
	StatusIdentified,
	StatusLetterGenerated,
	StatusApplied,
	StatusResponseReceived,
	StatusInterview,
	StatusRefused,
	StatusAccepted,
}

// canonicalNext maps each status to its expected successors.
var canonicalNext = map[Status][]Status{
	StatusIdentified:       {StatusLetterGenerated},
	StatusLetterGenerated:  {StatusApplied},
	StatusApplied:          {StatusResponseReceived},
	StatusResponseReceived: {StatusInterview},
	StatusInterview:        {StatusRefused, StatusAccepted},
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if Status(s) == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown candidature status %q", s)
}

// IsTerminal reports whether a status has no canonical successor.
func IsTerminal(s Status) bool {
	return s == StatusRefused || s == StatusAccepted
}

// IsCanonicalTransition reports whether from → to follows the expected flow.
// Non-canonical jumps are still persisted by Update; callers use this only
// for advisory purposes (display, logging).
func IsCanonicalTransition(from, to Status) bool {
	for _, next := range canonicalNext[from] {
		if next == to {
			return true
		}
	}
	return false
}
