package models

// ApplicationStatus tracks where an application sits in its lifecycle.
type ApplicationStatus string

const (
	StatusSaved     ApplicationStatus = "saved"
	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// transitions holds the legal forward edges of the lifecycle. Rejection and
// withdrawal are reachable from any non-terminal state and handled in
// CanTransition rather than enumerated here.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusSaved:     {StatusApplied},
	StatusApplied:   {StatusScreening, StatusInterview, StatusOffer},
	StatusScreening: {StatusInterview, StatusOffer},
	StatusInterview: {StatusOffer},
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSaved, StatusApplied, StatusScreening, StatusInterview,
		StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusOffer || s == StatusRejected || s == StatusWithdrawn
}

// CanTransition reports whether moving from s to next is legal.
func CanTransition(s, next ApplicationStatus) bool {
	if !s.Valid() || !next.Valid() || s == next {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusRejected || next == StatusWithdrawn {
		return true
	}
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Job statuses. Extractions under the confidence threshold land in draft.
const (
	JobStatusActive  = "active"
	JobStatusExpired = "expired"
	JobStatusDraft   = "draft"
)

// Resume parse statuses.
const (
	ResumePending = "pending"
	ResumeParsing = "parsing"
	ResumeParsed  = "parsed"
	ResumeFailed  = "failed"
)

// Digest statuses.
const (
	DigestPending = "pending"
	DigestSent    = "sent"
	DigestFailed  = "failed"
)

// Digest frequencies.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
	FrequencyOff    = "off"
)

// ApplicationEvent types.
const (
	EventCreated             = "CREATED"
	EventStatusChange        = "STATUS_CHANGE"
	EventNoteAdded           = "NOTE_ADDED"
	EventAutomationSubmitted = "AUTOMATION_SUBMITTED"
	EventAutomationMissing   = "AUTOMATION_MISSING_FIELDS"
	EventAutomationFailed    = "AUTOMATION_FAILED"
)

// JobSkill requirement levels.
const (
	RequirementRequired   = "required"
	RequirementNiceToHave = "nice_to_have"
)
