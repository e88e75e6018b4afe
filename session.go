package authcore

// Session registry helpers. These mutate one in-memory record and carry no
// synchronization of their own: store implementations call them under their
// own locking (store/memory) or re-express them atomically server-side
// (store/redis). The engine itself never mutates a fetched record.

// AddSessionID appends id to the active set, preserving insertion order and
// rejecting duplicates.
func (u *UserRecord) AddSessionID(id string) {
	if u.HasSessionID(id) {
		return
	}
	u.RefreshSessionIDs = append(u.RefreshSessionIDs, id)
}

// HasSessionID reports whether id is in the active set. Membership is the
// sole authority for whether a refresh token is still valid.
func (u *UserRecord) HasSessionID(id string) bool {
	for _, s := range u.RefreshSessionIDs {
		if s == id {
			return true
		}
	}
	return false
}

// RemoveSessionID removes one id. Removing an absent id is a no-op, so
// revocation stays idempotent under concurrent logout.
func (u *UserRecord) RemoveSessionID(id string) {
	for i, s := range u.RefreshSessionIDs {
		if s == id {
			u.RefreshSessionIDs = append(u.RefreshSessionIDs[:i], u.RefreshSessionIDs[i+1:]...)
			return
		}
	}
}

// RotateSessionID removes oldID and, only when oldID was present, appends
// newID. It reports the prior presence of oldID. An absent oldID does not
// panic or error, since revocation may have already happened concurrently,
// but no new session is added in that case and the caller is expected to
// reject the refresh request itself.
func (u *UserRecord) RotateSessionID(oldID, newID string) bool {
	if !u.HasSessionID(oldID) {
		return false
	}
	u.RemoveSessionID(oldID)
	u.AddSessionID(newID)
	return true
}

// ClearSessionIDs empties the active set, revoking every session.
func (u *UserRecord) ClearSessionIDs() {
	u.RefreshSessionIDs = nil
}
