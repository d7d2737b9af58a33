package models

// Group is a set of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Trip").
	Name string `json:"name"`

	// Emoji is the visual tag shown next to the name.
	Emoji string `json:"emoji"`

	// AdminID is the user ID of the creator. There is exactly one admin and
	// it is always an internal member of the group.
	AdminID string `json:"admin_id"`

	// Members is populated by the store on reads.
	Members []Member `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// IsAdmin reports whether userID administers the group.
func (g *Group) IsAdmin(userID string) bool {
	return userID != "" && g.AdminID == userID
}

// Member returns the member with the given ID.
func (g *Group) Member(id MemberID) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether id belongs to the group.
func (g *Group) HasMember(id MemberID) bool {
	_, ok := g.Member(id)
	return ok
}
