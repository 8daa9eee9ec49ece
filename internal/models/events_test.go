package models

import (
	"testing"
	"time"
)

func TestNewEventSeedsOwnerMembership(t *testing.T) {
	ev := NewEvent("demo-host", "alice", "Party", "", "", nil, nil, []string{"bob", "alice", "bob", ""})

	if ev.OwnerID != "alice" {
		t.Errorf("ownerId = %q, want alice", ev.OwnerID)
	}
	if ev.Status != StatusActive {
		t.Errorf("status = %q, want ACTIVE", ev.Status)
	}
	if ev.Visibility != VisibilityPrivate {
		t.Errorf("visibility should default to PRIVATE, got %q", ev.Visibility)
	}

	want := []string{"alice", "bob"}
	if len(ev.MemberIDs) != len(want) {
		t.Fatalf("memberIds = %v, want %v", ev.MemberIDs, want)
	}
	for i, m := range want {
		if ev.MemberIDs[i] != m {
			t.Errorf("memberIds[%d] = %q, want %q", i, ev.MemberIDs[i], m)
		}
	}
}

func TestEventStructValidation(t *testing.T) {
	ev := NewEvent("demo-host", "alice", "Party", "", "", nil, nil, nil)
	if err := Validate.Struct(ev); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}

	ev.Title = ""
	if err := Validate.Struct(ev); err == nil {
		t.Error("empty title should fail struct validation")
	}
}

func TestMarkDeletedIsOneWay(t *testing.T) {
	ev := NewEvent("demo-host", "alice", "Party", "", "", nil, nil, nil)
	now := time.Now().UTC()

	if err := ev.MarkDeleted(now); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if ev.Status != StatusDeleted || ev.DeletedAt == nil {
		t.Errorf("event not marked deleted: status=%q deletedAt=%v", ev.Status, ev.DeletedAt)
	}
	if err := ev.MarkDeleted(now); err == nil {
		t.Error("second delete should be rejected")
	}
}

func TestIsMember(t *testing.T) {
	ev := NewEvent("demo-host", "alice", "Party", "", "", nil, nil, []string{"bob"})

	if !ev.IsMember("alice") || !ev.IsMember("bob") {
		t.Error("owner and seeded member should both be members")
	}
	if ev.IsMember("mallory") {
		t.Error("non-member reported as member")
	}
}

func TestAddMembersReincludesOwnerAndCaller(t *testing.T) {
	ev := NewEvent("demo-host", "alice", "Party", "", "", nil, nil, nil)
	ev.MemberIDs = []string{"bob"} // simulate a damaged member list

	ev.AddMembers("bob", []string{"carol", "carol"})

	for _, want := range []string{"alice", "bob", "carol"} {
		if !ev.IsMember(want) {
			t.Errorf("%s missing from memberIds %v", want, ev.MemberIDs)
		}
	}
	if len(ev.MemberIDs) != 3 {
		t.Errorf("memberIds should be deduplicated, got %v", ev.MemberIDs)
	}
}

func TestRemoveMemberGuards(t *testing.T) {
	ev := NewEvent("demo-host", "alice", "Party", "", "", nil, nil, []string{"bob", "carol"})

	if err := ev.RemoveMember("bob", "alice", false); err == nil {
		t.Error("removing the owner should be rejected")
	}
	if err := ev.RemoveMember("bob", "alice", true); err == nil {
		t.Error("removing the owner should be rejected even for admins")
	}
	if err := ev.RemoveMember("bob", "bob", false); err == nil {
		t.Error("a non-admin removing themself should be rejected")
	}
	if err := ev.RemoveMember("admin", "bob", true); err != nil {
		t.Errorf("admin removing a member failed: %v", err)
	}
	if ev.IsMember("bob") {
		t.Error("bob should have been removed")
	}
	if !ev.IsMember("alice") {
		t.Error("owner must survive every removal")
	}
}

func TestEventPatchValidate(t *testing.T) {
	empty := "   "
	if err := (&EventPatch{Title: &empty}).Validate(); err == nil {
		t.Error("blank title should fail validation")
	}

	bad := Visibility("SECRET")
	if err := (&EventPatch{Visibility: &bad}).Validate(); err == nil {
		t.Error("unknown visibility should fail validation")
	}

	good := "Party v2"
	pub := VisibilityPublic
	if err := (&EventPatch{Title: &good, Visibility: &pub}).Validate(); err != nil {
		t.Errorf("valid patch rejected: %v", err)
	}
}

func TestEventPatchApplyOnlyProvidedFields(t *testing.T) {
	starts := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	ev := NewEvent("demo-host", "alice", "Party", "the original", "", &starts, nil, nil)

	title := "Renamed"
	now := time.Now().UTC()
	(&EventPatch{Title: &title}).Apply(ev, now)

	if ev.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", ev.Title)
	}
	if ev.Description != "the original" {
		t.Errorf("description should be untouched, got %q", ev.Description)
	}
	if ev.StartsAt == nil || !ev.StartsAt.Equal(starts) {
		t.Errorf("startsAt should be untouched, got %v", ev.StartsAt)
	}
	if !ev.UpdatedAt.Equal(now) {
		t.Errorf("updatedAt not stamped: %v", ev.UpdatedAt)
	}
}

func TestUniqueStrings(t *testing.T) {
	got := UniqueStrings([]string{" a ", "b", "a", "", "c", "b"})
	want := []string{"a", "b", "c"}

	if len(got) != len(want) {
		t.Fatalf("UniqueStrings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueStrings[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
