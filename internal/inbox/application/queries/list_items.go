// Package queries holds the inbox read handlers.
package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/felixgeelhaar/focusos/internal/inbox/services"
	"github.com/google/uuid"
)

// DefaultLimit is the page size when the query sets none.
const DefaultLimit = 50

// ItemDTO is a data transfer object for inbox items.
type ItemDTO struct {
	ID               uuid.UUID         `json:"id"`
	RawText          string            `json:"raw_text"`
	Source           string            `json:"source"`
	Status           string            `json:"status"`
	Suggested        domain.TriageType `json:"suggested_type,omitempty"`
	TriagedTaskID    *uuid.UUID        `json:"triaged_task_id,omitempty"`
	TriagedProjectID *uuid.UUID        `json:"triaged_project_id,omitempty"`
	CapturedAt       time.Time         `json:"captured_at"`
}

// ListItemsQuery contains the parameters for listing inbox items.
type ListItemsQuery struct {
	UserID uuid.UUID
	Status string // defaults to UNPROCESSED
	Limit  int
}

// ListItemsHandler handles ListItemsQuery.
type ListItemsHandler struct {
	repo       domain.Repository
	classifier *services.Classifier
}

// NewListItemsHandler creates a new ListItemsHandler.
func NewListItemsHandler(repo domain.Repository, classifier *services.Classifier) *ListItemsHandler {
	if classifier == nil {
		classifier = services.NewClassifier()
	}
	return &ListItemsHandler{repo: repo, classifier: classifier}
}

// Handle lists items newest first. Unprocessed items carry a triage hint.
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) ([]ItemDTO, error) {
	status, err := domain.ParseStatus(query.Status)
	if err != nil {
		return nil, err
	}
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	items, err := h.repo.List(ctx, query.UserID, []domain.Status{status}, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dto := ItemDTO{
			ID:               item.ID(),
			RawText:          item.RawText(),
			Source:           string(item.Source()),
			Status:           string(item.Status()),
			TriagedTaskID:    item.TriagedTaskID(),
			TriagedProjectID: item.TriagedProjectID(),
			CapturedAt:       item.CapturedAt(),
		}
		if item.Status() == domain.StatusUnprocessed {
			dto.Suggested = h.classifier.Suggest(item.RawText())
		}
		dtos[i] = dto
	}
	return dtos, nil
}
