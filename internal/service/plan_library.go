package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrExportUnavailable = errors.New("plan export is not configured")
)

const (
	DefaultLibraryLimit = 20
	MaxLibraryLimit     = 100
)

// PlanLibraryService backs the "my plans" screens.
type PlanLibraryService interface {
	ListPlans(ctx context.Context, userID string, limit int) ([]domain.PlanRecord, error)
	GetPlan(ctx context.Context, userID, planID string) (*domain.PlanRecord, error)
	ExportPlan(ctx context.Context, userID, planID string) (url string, expiresAt time.Time, err error)
	DeletePlan(ctx context.Context, userID, planID string) error
}

type planLibraryService struct {
	plans  repository.PlanRepository
	files  storage.FileStorage // nil disables export
	expiry time.Duration
	logger *zap.Logger
}

// NewPlanLibraryService creates the library service. files may be nil.
func NewPlanLibraryService(plans repository.PlanRepository, files storage.FileStorage, logger *zap.Logger) PlanLibraryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &planLibraryService{
		plans:  plans,
		files:  files,
		expiry: storage.DefaultPresignedURLExpiry,
		logger: logger,
	}
}

// ListPlans returns the caller's plans, newest first.
func (s *planLibraryService) ListPlans(ctx context.Context, userID string, limit int) ([]domain.PlanRecord, error) {
	if limit <= 0 {
		limit = DefaultLibraryLimit
	}
	if limit > MaxLibraryLimit {
		limit = MaxLibraryLimit
	}
	return s.plans.ListByUserID(ctx, userID, int64(limit))
}

// GetPlan returns one plan. Plans of other users are reported as missing.
func (s *planLibraryService) GetPlan(ctx context.Context, userID, planID string) (*domain.PlanRecord, error) {
	record, err := s.plans.GetByPlanID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if record.UserID == "" || record.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return record, nil
}

// ExportPlan writes the plan JSON to object storage and returns a
// time-limited download URL.
func (s *planLibraryService) ExportPlan(ctx context.Context, userID, planID string) (string, time.Time, error) {
	if s.files == nil {
		return "", time.Time{}, ErrExportUnavailable
	}
	record, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return "", time.Time{}, err
	}

	body, err := json.Marshal(record.Plan)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode plan: %w", err)
	}
	key := storage.PlanExportKey(userID, planID)
	if err := s.files.PutObject(ctx, key, "application/json", body); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to upload plan: %w", err)
	}
	if record.ExportKey != key {
		if err := s.plans.SetExportKey(ctx, planID, key); err != nil {
			return "", time.Time{}, err
		}
	}

	expiresAt := time.Now().Add(s.expiry).UTC()
	url, err := s.files.GeneratePresignedDownloadURL(ctx, key, s.expiry)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to presign plan download: %w", err)
	}
	return url, expiresAt, nil
}

// DeletePlan removes the plan and, if it was exported, its stored copy.
func (s *planLibraryService) DeletePlan(ctx context.Context, userID, planID string) error {
	record, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if record.ExportKey != "" && s.files != nil {
		if err := s.files.DeleteObject(ctx, record.ExportKey); err != nil {
			s.logger.Warn("failed to delete exported plan", zap.String("plan_id", planID), zap.Error(err))
		}
	}
	return nil
}
