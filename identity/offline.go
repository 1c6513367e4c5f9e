// Package identity derives the deterministic "offline" player UUID used when
// online-mode authentication is disabled (spec §3.5): UUIDv3 of the nil
// namespace with name "OfflinePlayer:<username>". This mirrors vanilla's own
// offline-mode derivation so the same username always maps to the same UUID
// across restarts.
package identity

import "github.com/google/uuid"

// OfflineUUID returns the deterministic offline UUID for username.
func OfflineUUID(username string) uuid.UUID {
	return uuid.NewMD5(uuid.Nil, []byte("OfflinePlayer:"+username))
}
