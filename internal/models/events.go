package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

type Event struct {
	ID      string `bson:"_id" json:"id"`
	EventID string `bson:"eventId" json:"eventId"`
	HostID  string `bson:"hostId" json:"hostId"`

	Title       string     `bson:"title" json:"title" validate:"required"`
	Description string     `bson:"description" json:"description"`
	StartsAt    *time.Time `bson:"startsAt" json:"startsAt"`
	EndsAt      *time.Time `bson:"endsAt" json:"endsAt"`
	Visibility  Visibility `bson:"visibility" json:"visibility"`
	Status      Status     `bson:"status" json:"status"`

	OwnerID   string   `bson:"ownerId" json:"ownerId"`
	MemberIDs []string `bson:"memberIds" json:"memberIds"`

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// NewEvent seeds the member list with the owner plus any extra ids, deduplicated.
func NewEvent(hostID, ownerID, title, description string, visibility Visibility, startsAt, endsAt *time.Time, extraMembers []string) *Event {
	now := time.Now().UTC()
	id := "event_" + uuid.NewString()
	if visibility == "" {
		visibility = VisibilityPrivate
	}

	return &Event{
		ID:          id,
		EventID:     id,
		HostID:      hostID,
		Title:       strings.TrimSpace(title),
		Description: description,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Visibility:  visibility,
		Status:      StatusActive,
		OwnerID:     ownerID,
		MemberIDs:   UniqueStrings(append([]string{ownerID}, extraMembers...)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (e *Event) IsDeleted() bool {
	return e.Status == StatusDeleted
}

func (e *Event) IsMember(userID string) bool {
	for _, m := range e.MemberIDs {
		if m == userID {
			return true
		}
	}
	return false
}

// MarkDeleted flips the event to the deleted state. Deleting an already
// deleted event is rejected so callers can translate it to a not-found.
func (e *Event) MarkDeleted(now time.Time) error {
	if e.Status == StatusDeleted {
		return fmt.Errorf("event %s is already deleted", e.EventID)
	}
	e.Status = StatusDeleted
	e.DeletedAt = &now
	return nil
}

// AddMembers merges ids into the member list, always re-including the owner
// and the caller.
func (e *Event) AddMembers(callerID string, ids []string) {
	merged := append([]string{e.OwnerID, callerID}, e.MemberIDs...)
	merged = append(merged, ids...)
	e.MemberIDs = UniqueStrings(merged)
}

// RemoveMember filters the target out of the member list. The owner can never
// be removed, and a non-admin cannot remove themself.
func (e *Event) RemoveMember(callerID, targetID string, callerIsAdmin bool) error {
	if targetID == e.OwnerID {
		return fmt.Errorf("owner cannot be removed from event members")
	}
	if !callerIsAdmin && targetID == callerID {
		return fmt.Errorf("members cannot remove themselves")
	}

	next := make([]string, 0, len(e.MemberIDs))
	for _, m := range e.MemberIDs {
		if m != targetID {
			next = append(next, m)
		}
	}
	e.MemberIDs = UniqueStrings(append([]string{e.OwnerID}, next...))
	return nil
}

// EventPatch carries the fields a PATCH may overwrite. Nil means the field
// was not provided and the stored value is kept.
type EventPatch struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	StartsAt    *time.Time  `json:"startsAt"`
	EndsAt      *time.Time  `json:"endsAt"`
	Visibility  *Visibility `json:"visibility"`
}

func (p *EventPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("title must be a non-empty string")
	}
	if p.Visibility != nil && !p.Visibility.Valid() {
		return fmt.Errorf("visibility must be PRIVATE or PUBLIC")
	}
	return nil
}

// Apply merges the provided fields into the event and stamps updatedAt.
func (p *EventPatch) Apply(e *Event, now time.Time) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartsAt != nil {
		e.StartsAt = p.StartsAt
	}
	if p.EndsAt != nil {
		e.EndsAt = p.EndsAt
	}
	if p.Visibility != nil {
		e.Visibility = *p.Visibility
	}
	e.UpdatedAt = now
}

// UniqueStrings trims, drops empties and deduplicates while preserving the
// first occurrence order.
func UniqueStrings(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
