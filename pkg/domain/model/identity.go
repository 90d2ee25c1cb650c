package model

// UserID is the chat platform's unique identifier for a member
type UserID string

// String returns the string representation of UserID
func (x UserID) String() string {
	return string(x)
}

// Identity is a chat platform member record. ID is always present; Email and
// Name may be empty or disagree with other systems.
type Identity struct {
	ID    UserID
	Email string
	Name  string // Display or real name, whichever the platform reports
}

// Verifiable reports whether the identity carries any key usable for a
// directory lookup
func (x Identity) Verifiable() bool {
	return x.Email != "" || x.Name != ""
}
