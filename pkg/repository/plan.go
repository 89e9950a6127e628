package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const planColumns = `id, name, min_amount, max_amount, roi, duration_days, description, created_at, updated_at`

type PlanPostgres struct {
	db *sqlx.DB
}

func NewPlanPostgres(db *sqlx.DB) *PlanPostgres {
	return &PlanPostgres{db: db}
}

func (r *PlanPostgres) ListPlans(ctx context.Context) ([]models.Plan, error) {
	plans := []models.Plan{}
	err := r.db.SelectContext(ctx, &plans, `SELECT `+planColumns+` FROM plans ORDER BY min_amount`)
	return plans, errors.Wrap(err, "list plans")
}

func (r *PlanPostgres) GetPlan(ctx context.Context, id string) (models.Plan, error) {
	var plan models.Plan
	err := r.db.GetContext(ctx, &plan, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id)
	return plan, errors.Wrap(err, "get plan")
}

func (r *PlanPostgres) CreatePlan(ctx context.Context, plan models.Plan) (models.Plan, error) {
	var created models.Plan
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO plans (id, name, min_amount, max_amount, roi, duration_days, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+planColumns,
		plan.ID, plan.Name, plan.MinAmount, plan.MaxAmount, plan.ROI, plan.DurationDays, plan.Description)
	return created, errors.Wrap(err, "create plan")
}

func (r *PlanPostgres) UpdatePlan(ctx context.Context, plan models.Plan) (models.Plan, error) {
	var updated models.Plan
	err := r.db.GetContext(ctx, &updated, `
		UPDATE plans SET name = $2, min_amount = $3, max_amount = $4, roi = $5, duration_days = $6,
			description = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+planColumns,
		plan.ID, plan.Name, plan.MinAmount, plan.MaxAmount, plan.ROI, plan.DurationDays, plan.Description)
	return updated, errors.Wrap(err, "update plan")
}

func (r *PlanPostgres) DeletePlan(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete plan")
	}
	return expectAffected(res)
}
