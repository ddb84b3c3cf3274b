package models

// Frequency describes how often a chore recurs.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyCustom  Frequency = "CUSTOM"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	}
	return false
}

// IntervalDays returns the recurrence interval in days. CUSTOM and any
// unknown value fall back to a week.
func (f Frequency) IntervalDays() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 30
	default:
		return 7
	}
}

// Chore is a recurring household task assigned to a member. Chores share
// member identifiers with the ledger but no other invariants: they are a
// plain CRUD record with a due timestamp.
type Chore struct {
	// ID is the unique identifier for the chore (UUID format).
	ID string `json:"id"`

	// Name is the short label, e.g. "Take out trash".
	Name string `json:"name"`

	// Description is an optional longer explanation.
	Description string `json:"description,omitempty"`

	// Frequency is how often the chore recurs.
	Frequency Frequency `json:"frequency"`

	// AssignedTo is the member responsible for the chore.
	AssignedTo string `json:"assigned_to"`

	// LastDone is the Unix timestamp of the most recent completion.
	LastDone int64 `json:"last_done"`

	// NextDue is the Unix timestamp when the chore is next due.
	NextDue int64 `json:"next_due"`

	// Completed reports whether the current cycle is done.
	Completed bool `json:"completed"`

	// CreatedAt is the Unix timestamp when the chore was created.
	CreatedAt int64 `json:"created_at"`
}
