// Package commands holds the inbox write handlers.
package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/felixgeelhaar/focusos/internal/inbox/services"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// CaptureCommand drops raw text into the inbox.
type CaptureCommand struct {
	UserID  uuid.UUID
	RawText string
	Source  domain.Source
}

// CaptureResult returns the new item and a triage hint.
type CaptureResult struct {
	ItemID    uuid.UUID         `json:"id"`
	Suggested domain.TriageType `json:"suggested_type"`
}

// CaptureHandler handles CaptureCommand.
type CaptureHandler struct {
	repo       domain.Repository
	classifier *services.Classifier
	recorder   activity.Recorder
	uow        sharedApplication.UnitOfWork
	clock      sharedDomain.Clock
}

// NewCaptureHandler creates a new CaptureHandler.
func NewCaptureHandler(
	repo domain.Repository,
	classifier *services.Classifier,
	recorder activity.Recorder,
	uow sharedApplication.UnitOfWork,
	clock sharedDomain.Clock,
) *CaptureHandler {
	if classifier == nil {
		classifier = services.NewClassifier()
	}
	return &CaptureHandler{
		repo:       repo,
		classifier: classifier,
		recorder:   recorder,
		uow:        uow,
		clock:      clock,
	}
}

// Handle captures the item.
func (h *CaptureHandler) Handle(ctx context.Context, cmd CaptureCommand) (*CaptureResult, error) {
	item, err := domain.NewItem(cmd.UserID, cmd.RawText, cmd.Source, h.clock.Now())
	if err != nil {
		return nil, err
	}

	events := item.DomainEvents()
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.repo.Save(txCtx, item); err != nil {
			return err
		}
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to capture inbox item: %w", err)
	}

	h.recorder.Announce(ctx, events...)
	return &CaptureResult{
		ItemID:    item.ID(),
		Suggested: h.classifier.Suggest(item.RawText()),
	}, nil
}
