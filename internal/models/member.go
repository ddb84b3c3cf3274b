package models

// Member represents one household participant who can pay for or owe
// shares of expenses. Members are created at registration and are never
// deleted while an Expense references them (the expense history is the
// financial audit trail).
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// Email is the member's email address (unique).
	Email string `json:"email"`

	// CreatedAt is the Unix timestamp when the member was registered.
	CreatedAt int64 `json:"created_at"`
}
