package repository

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDuplicate    = RepositoryError("duplicate plan id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PlanRepository stores generated plans for the "my plans" library.
type PlanRepository interface {
	Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error)
	GetByPlanID(ctx context.Context, planID string) (*domain.PlanRecord, error)
	ListByUserID(ctx context.Context, userID string, limit int64) ([]domain.PlanRecord, error)
	SetExportKey(ctx context.Context, planID, exportKey string) error
	Delete(ctx context.Context, planID, userID string) error
}
