package authcore_test

import (
	"reflect"
	"testing"

	"github.com/washhub/authcore"
)

func TestSessionSetSemantics(t *testing.T) {
	u := &authcore.UserRecord{}

	u.AddSessionID("a")
	u.AddSessionID("b")
	u.AddSessionID("a") // duplicates rejected
	if got := u.RefreshSessionIDs; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("set = %v", got)
	}

	if !u.HasSessionID("a") || u.HasSessionID("c") {
		t.Fatal("membership wrong")
	}

	u.RemoveSessionID("c") // absent id is a no-op
	u.RemoveSessionID("a")
	if got := u.RefreshSessionIDs; !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("set after remove = %v", got)
	}

	u.ClearSessionIDs()
	if len(u.RefreshSessionIDs) != 0 {
		t.Fatalf("set after clear = %v", u.RefreshSessionIDs)
	}
}

func TestRotateSessionIDPreservesOrder(t *testing.T) {
	u := &authcore.UserRecord{RefreshSessionIDs: []string{"a", "b", "c"}}

	if !u.RotateSessionID("b", "d") {
		t.Fatal("rotation of present id reported absent")
	}
	// Removal keeps relative order; the new id appends at the tail, keeping
	// insertion order equal to session creation order.
	if got := u.RefreshSessionIDs; !reflect.DeepEqual(got, []string{"a", "c", "d"}) {
		t.Fatalf("set = %v", got)
	}
}

func TestRotateSessionIDAbsentOld(t *testing.T) {
	u := &authcore.UserRecord{RefreshSessionIDs: []string{"a"}}

	if u.RotateSessionID("gone", "d") {
		t.Fatal("rotation of absent id reported present")
	}
	// No stray session appears for a rotation that the caller must reject.
	if got := u.RefreshSessionIDs; !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("set = %v", got)
	}
}
