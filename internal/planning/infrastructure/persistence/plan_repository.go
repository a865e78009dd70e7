package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/planning/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PlanRepository implements domain.Repository.
type PlanRepository struct {
	conn database.Connection
}

func NewPlanRepository(conn database.Connection) *PlanRepository {
	return &PlanRepository{conn: conn}
}

// Upsert writes the plan for its (user, date) and adopts the ID of any
// plan it replaced.
func (r *PlanRepository) Upsert(ctx context.Context, plan *domain.DailyPlan) error {
	payload, err := domain.EncodePlan(plan.Plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	inputs, err := domain.EncodeInputs(plan.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode plan inputs: %w", err)
	}

	d := r.conn.Driver()
	var id string
	err = database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, database.Rebind(d, `
		INSERT INTO daily_plans (id, user_id, plan_date, plan_json, inputs_json, generated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, plan_date) DO UPDATE SET
			plan_json = excluded.plan_json,
			inputs_json = excluded.inputs_json,
			generated_at = excluded.generated_at
		RETURNING id`),
		plan.ID.String(), plan.UserID.String(), plan.PlanDate, payload, inputs,
		database.TimeArg(d, plan.GeneratedAt), database.TimeArg(d, plan.GeneratedAt),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to upsert plan: %w", err)
	}
	if plan.ID, err = uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid plan id: %w", err)
	}
	return nil
}

func (r *PlanRepository) FindByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyPlan, error) {
	var (
		id, owner, planDate, payload, inputs string
		generatedAt                          database.NullTime
	)
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, database.Rebind(r.conn.Driver(),
		`SELECT id, user_id, plan_date, plan_json, inputs_json, generated_at
		 FROM daily_plans WHERE user_id = ? AND plan_date = ?`), userID.String(), date).
		Scan(&id, &owner, &planDate, &payload, &inputs, &generatedAt)
	if database.IsNoRows(err) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	plan := &domain.DailyPlan{PlanDate: planDate, GeneratedAt: generatedAt.Time}
	if plan.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid plan id: %w", err)
	}
	if plan.UserID, err = uuid.Parse(owner); err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	if plan.Plan, err = domain.DecodePlan(payload); err != nil {
		return nil, err
	}
	if plan.Inputs, err = domain.DecodeInputs(inputs); err != nil {
		return nil, err
	}
	return plan, nil
}
