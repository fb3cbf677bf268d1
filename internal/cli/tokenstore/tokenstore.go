// Package tokenstore persists session credentials between CLI invocations.
//
// Two independent bearer tokens exist at the same time: the user session
// token and the admin session token. They never interact; a user may hold
// both, either, or neither. No expiry is enforced locally — the backend is
// the sole authority on token validity.
package tokenstore

// Slot names a persisted credential or preference
type Slot string

const (
	// SlotToken holds the user session token
	SlotToken Slot = "token"
	// SlotLegacyToken duplicates the user token under the key older
	// releases read
	SlotLegacyToken Slot = "auth-token"
	// SlotAdminToken holds the admin session token
	SlotAdminToken Slot = "admin_token"
	// SlotTheme holds the UI theme preference
	SlotTheme Slot = "theme"
)

// Store is durable key-value persistence for credential slots.
// Set must be immediately visible to subsequent Get calls and Clear is
// idempotent: clearing an absent slot is not an error.
type Store interface {
	Get(slot Slot) (string, bool)
	Set(slot Slot, value string) error
	Clear(slot Slot) error
}
