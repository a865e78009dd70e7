// Package queries holds the planning read handlers.
package queries

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/focusos/internal/planning/domain"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// GetTodayPlanQuery asks for the plan of the current local date.
type GetTodayPlanQuery struct {
	UserID uuid.UUID
}

// GetTodayPlanHandler handles the GetTodayPlanQuery.
type GetTodayPlanHandler struct {
	planRepo domain.Repository
	times    *sharedDomain.TimeService
}

// NewGetTodayPlanHandler creates a new GetTodayPlanHandler.
func NewGetTodayPlanHandler(planRepo domain.Repository, timeService *sharedDomain.TimeService) *GetTodayPlanHandler {
	return &GetTodayPlanHandler{planRepo: planRepo, times: timeService}
}

// Handle returns nil when no plan was generated today.
func (h *GetTodayPlanHandler) Handle(ctx context.Context, query GetTodayPlanQuery) (*domain.DailyPlan, error) {
	plan, err := h.planRepo.FindByDate(ctx, query.UserID, h.times.Today())
	if errors.Is(err, domain.ErrPlanNotFound) {
		return nil, nil
	}
	return plan, err
}
