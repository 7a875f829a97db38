package models

// Group represents a set of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// CreatorID is the user who created the group. The creator is its first member.
	CreatorID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a user as seen through one group's membership.
type Member struct {
	// UserID references the member's User.
	UserID string

	// DisplayName is copied from the user for responses.
	DisplayName string

	// JoinedAt is the Unix timestamp when the user joined the group.
	// Membership order (JoinedAt, then insertion) is the tie-break order used
	// when planning settlements.
	JoinedAt int64
}
