package models

import (
	"fmt"
	"strings"
)

// MemberKind tags a MemberID.
type MemberKind string

const (
	// Internal members have an account and can log in.
	Internal MemberKind = "internal"
	// External members exist only inside a group; they cannot log in or pay
	// directly, so the admin settles on their behalf.
	External MemberKind = "external"
)

// Valid reports whether k is a known kind.
func (k MemberKind) Valid() bool {
	return k == Internal || k == External
}

// MemberID identifies a member within a group.
type MemberID struct {
	Kind MemberKind `json:"kind"`
	Ref  string     `json:"ref"`
}

// InternalMember returns the MemberID of an account holder.
func InternalMember(userID string) MemberID {
	return MemberID{Kind: Internal, Ref: userID}
}

// ExternalMember returns the MemberID of a guest.
func ExternalMember(guestID string) MemberID {
	return MemberID{Kind: External, Ref: guestID}
}

// IsInternal reports whether the member has an account.
func (id MemberID) IsInternal() bool { return id.Kind == Internal }

// IsExternal reports whether the member is a guest.
func (id MemberID) IsExternal() bool { return id.Kind == External }

// IsZero reports whether id is unset.
func (id MemberID) IsZero() bool { return id.Kind == "" && id.Ref == "" }

// Validate checks that the kind is known and the reference is present.
func (id MemberID) Validate() error {
	if !id.Kind.Valid() {
		return fmt.Errorf("invalid member kind %q", id.Kind)
	}
	if strings.TrimSpace(id.Ref) == "" {
		return fmt.Errorf("member reference is empty")
	}
	return nil
}

// Less orders member IDs: internal before external, then by Ref.
// Used wherever output must be deterministic.
func (id MemberID) Less(other MemberID) bool {
	if id.Kind != other.Kind {
		return id.Kind == Internal
	}
	return id.Ref < other.Ref
}

// String is for logs only.
func (id MemberID) String() string {
	return string(id.Kind) + ":" + id.Ref
}

// Member is a participant in a group.
type Member struct {
	ID      MemberID `json:"id"`
	GroupID string   `json:"group_id"`

	// DisplayName is resolved from the user profile for internal members and
	// is free text for external ones.
	DisplayName string `json:"display_name"`

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64 `json:"joined_at"`
}
