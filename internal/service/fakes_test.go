package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeSynthesizer returns a canned plan or error and counts calls.
type fakeSynthesizer struct {
	plan  *domain.Plan
	err   error
	calls int
	seen  domain.Answers
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, a domain.Answers) (*domain.Plan, error) {
	f.calls++
	f.seen = a
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

// memPlanRepo is an in-memory repository.PlanRepository.
type memPlanRepo struct {
	mu        sync.Mutex
	records   map[string]*domain.PlanRecord
	createErr error
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{records: map[string]*domain.PlanRecord{}}
}

func (r *memPlanRepo) Create(_ context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	if _, ok := r.records[record.PlanID]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	cp := *record
	r.records[record.PlanID] = &cp
	return record.ID, nil
}

func (r *memPlanRepo) GetByPlanID(_ context.Context, planID string) (*domain.PlanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[planID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *memPlanRepo) ListByUserID(_ context.Context, userID string, limit int64) ([]domain.PlanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.PlanRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPlanRepo) SetExportKey(_ context.Context, planID, exportKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[planID]
	if !ok {
		return repository.ErrNotFound
	}
	rec.ExportKey = exportKey
	return nil
}

func (r *memPlanRepo) Delete(_ context.Context, planID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[planID]
	if !ok || rec.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.records, planID)
	return nil
}

// memStorage is an in-memory storage.FileStorage.
type memStorage struct {
	objects   map[string][]byte
	deleteErr error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	s.objects[key] = body
	return nil
}

func (s *memStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key + "?signed=1", nil
}

func (s *memStorage) DeleteObject(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}
