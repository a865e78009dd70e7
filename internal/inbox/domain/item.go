// Package domain models captured inbox items and how they are triaged.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrItemNotFound      = errors.New("inbox item not found")
	ErrEmptyText         = errors.New("inbox text cannot be empty")
	ErrAlreadyTriaged    = errors.New("inbox item already triaged")
	ErrInvalidTriageType = errors.New("invalid triage type")
	ErrInvalidStatus     = errors.New("invalid inbox status")
)

// Status is the processing state of an item.
type Status string

const (
	StatusUnprocessed Status = "UNPROCESSED"
	StatusTriaged     Status = "TRIAGED"
)

// ParseStatus validates a status filter. Empty selects StatusUnprocessed.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case "":
		return StatusUnprocessed, nil
	case StatusUnprocessed, StatusTriaged:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Source names where an item was captured.
type Source string

const (
	SourceManual Source = "MANUAL"
	SourceCLI    Source = "CLI"
	SourceMCP    Source = "MCP"
	SourceAPI    Source = "API"
)

// TriageType is what an item becomes when it leaves the inbox.
type TriageType string

const (
	TriageTask    TriageType = "TASK"
	TriageProject TriageType = "PROJECT"
	TriageNote    TriageType = "NOTE"
	TriageSomeday TriageType = "SOMEDAY"
)

// ParseTriageType validates a triage type name.
func ParseTriageType(s string) (TriageType, error) {
	switch t := TriageType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TriageTask, TriageProject, TriageNote, TriageSomeday:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTriageType, s)
}

// Item is one raw capture waiting to be triaged.
type Item struct {
	sharedDomain.BaseAggregateRoot
	userID           uuid.UUID
	rawText          string
	source           Source
	status           Status
	triagedTaskID    *uuid.UUID
	triagedProjectID *uuid.UUID
}

// NewItem captures rawText. An empty source is recorded as SourceManual.
func NewItem(userID uuid.UUID, rawText string, source Source, now time.Time) (*Item, error) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return nil, ErrEmptyText
	}
	if source == "" {
		source = SourceManual
	}
	item := &Item{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(now),
		userID:            userID,
		rawText:           rawText,
		source:            source,
		status:            StatusUnprocessed,
	}
	item.AddDomainEvent(NewItemCaptured(item.ID(), source, now))
	return item, nil
}

func (i *Item) UserID() uuid.UUID            { return i.userID }
func (i *Item) RawText() string              { return i.rawText }
func (i *Item) Source() Source               { return i.source }
func (i *Item) Status() Status               { return i.status }
func (i *Item) CapturedAt() time.Time        { return i.CreatedAt() }
func (i *Item) TriagedTaskID() *uuid.UUID    { return i.triagedTaskID }
func (i *Item) TriagedProjectID() *uuid.UUID { return i.triagedProjectID }

// Triage marks the item processed and links whatever it became. Notes link
// nothing.
func (i *Item) Triage(as TriageType, taskID, projectID *uuid.UUID, now time.Time) error {
	if i.status == StatusTriaged {
		return ErrAlreadyTriaged
	}
	i.status = StatusTriaged
	i.triagedTaskID = taskID
	i.triagedProjectID = projectID
	i.Touch(now)
	i.AddDomainEvent(NewItemTriaged(i.ID(), as, taskID, projectID, now))
	return nil
}

// Snapshot is the persisted form of an Item.
type Snapshot struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RawText          string
	Source           Source
	Status           Status
	TriagedTaskID    *uuid.UUID
	TriagedProjectID *uuid.UUID
	CapturedAt       time.Time
	UpdatedAt        time.Time
}

// Rehydrate rebuilds an Item from storage.
func Rehydrate(s Snapshot) *Item {
	return &Item{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(s.ID, s.CapturedAt, s.UpdatedAt)),
		userID:           s.UserID,
		rawText:          s.RawText,
		source:           s.Source,
		status:           s.Status,
		triagedTaskID:    s.TriagedTaskID,
		triagedProjectID: s.TriagedProjectID,
	}
}

// Repository persists inbox items.
type Repository interface {
	Save(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Item, error)
	// List returns items newest first.
	List(ctx context.Context, userID uuid.UUID, statuses []Status, limit int) ([]*Item, error)
}
