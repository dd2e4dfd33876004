package domain

import (
	"strings"

	"github.com/google/uuid"
)

// UserIDPrefix is the prefix VRChat puts in front of the UUID part of modern
// user identifiers, e.g. "usr_9d4bada6-e318-4aaf-9f14-85a0a2a0f673".
const UserIDPrefix = "usr_"

// User is a single roster entry: the identifier to moderate plus the display
// name it was exported with. Users loaded from a bare ID dump carry a
// placeholder display name.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Account is the authenticated account as reported by the current-user
// endpoint.
type Account struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// ValidUserID reports whether id looks like a VRChat user identifier.
// Modern IDs are "usr_" followed by a UUID. Legacy accounts predate the
// prefix and use short opaque identifiers, so any non-empty token without
// the prefix is accepted.
func ValidUserID(id string) bool {
	if id == "" {
		return false
	}

	rest, ok := strings.CutPrefix(id, UserIDPrefix)
	if !ok {
		return true
	}

	_, err := uuid.Parse(rest)

	return err == nil
}
