package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/llm"
	"alcyxob/fitness-planner/internal/observability"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
)

const archiveTimeout = 5 * time.Second

// GenerationResult is the outcome of a request that produced a plan.
// Source tells whether the remote model or the local fallback made it.
type GenerationResult struct {
	Plan    domain.Plan
	Source  domain.PlanSource
	Answers domain.Answers
	// RemoteErr is why the remote path was skipped or failed; nil on remote success.
	RemoteErr error
}

// Fallback reports whether the local synthesizer produced the plan.
func (r *GenerationResult) Fallback() bool {
	return r.Source == domain.PlanSourceFallback
}

// PlanService runs the generate-plan pipeline.
type PlanService interface {
	// GeneratePlan returns a plan for any body that parses as JSON. The only
	// error is ErrMalformedRequest.
	GeneratePlan(ctx context.Context, body []byte, userID string) (*GenerationResult, error)
	// Shutdown waits for in-flight archive writes or for ctx to end.
	Shutdown(ctx context.Context) error
}

// planService implements the PlanService interface.
type planService struct {
	remote        llm.Synthesizer
	remoteTimeout time.Duration
	local         llm.Synthesizer
	plans         repository.PlanRepository // nil disables archiving
	logger        *zap.Logger
	archives      sync.WaitGroup
}

// NewPlanService creates the generation pipeline. plans may be nil.
func NewPlanService(remote llm.Synthesizer, remoteTimeout time.Duration, plans repository.PlanRepository, logger *zap.Logger) PlanService {
	if remote == nil {
		remote = llm.DisabledSynthesizer{}
	}
	if remoteTimeout <= 0 {
		remoteTimeout = llm.DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &planService{
		remote:        remote,
		remoteTimeout: remoteTimeout,
		local:         LocalSynthesizer{},
		plans:         plans,
		logger:        logger,
	}
}

// GeneratePlan validates strictly, tries the remote synthesizer once, and
// falls back to the local synthesizer on any failure after the body parsed.
func (s *planService) GeneratePlan(ctx context.Context, body []byte, userID string) (*GenerationResult, error) {
	if !json.Valid(body) {
		return nil, ErrMalformedRequest
	}

	var result *GenerationResult
	answers, err := ParseAnswers(body)
	if err != nil {
		observability.RecordRemoteFailure(observability.ReasonInvalidInput)
		result = s.fallback(ctx, body, err)
	} else if plan, rerr := s.synthesizeRemote(ctx, answers); rerr != nil {
		observability.RecordRemoteFailure(failureReason(rerr))
		result = s.fallback(ctx, body, rerr)
	} else {
		// Model-chosen ids are not unique; the archive and library key on this one.
		plan.ID = NewPlanID()
		result = &GenerationResult{Plan: *plan, Source: domain.PlanSourceRemote, Answers: answers}
	}

	observability.RecordGeneration(string(result.Source))
	fields := []zap.Field{
		zap.String("plan_id", result.Plan.ID),
		zap.String("source", string(result.Source)),
		zap.String("tier", string(result.Plan.Tier)),
	}
	if result.RemoteErr != nil {
		fields = append(fields, zap.NamedError("remote_error", result.RemoteErr))
	}
	s.logger.Info("plan generated", fields...)

	s.archive(ctx, userID, result)
	return result, nil
}

func (s *planService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.archives.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *planService) synthesizeRemote(ctx context.Context, answers domain.Answers) (*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	start := time.Now()
	plan, err := s.remote.Synthesize(ctx, answers)
	if !errors.Is(err, llm.ErrRemoteDisabled) {
		observability.ObserveRemoteLatency(time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, llm.ErrContractViolation
	}
	return plan, nil
}

// fallback re-reads the body leniently and runs the local synthesizer.
func (s *planService) fallback(ctx context.Context, body []byte, cause error) *GenerationResult {
	answers := RecoverAnswers(body)
	plan, err := s.local.Synthesize(ctx, answers)
	if err != nil || plan == nil {
		s.logger.Error("local synthesizer failed", zap.Error(err))
		p := LocalGeneratePlan(answers)
		plan = &p
	}
	return &GenerationResult{
		Plan:      *plan,
		Source:    domain.PlanSourceFallback,
		Answers:   answers,
		RemoteErr: cause,
	}
}

// archive stores the plan best-effort in the background; failures never
// reach the caller.
func (s *planService) archive(ctx context.Context, userID string, result *GenerationResult) {
	if s.plans == nil {
		return
	}
	record := &domain.PlanRecord{
		PlanID:  result.Plan.ID,
		UserID:  userID,
		Source:  result.Source,
		Answers: result.Answers,
		Plan:    result.Plan,
	}
	record.Plan.Today = append([]domain.Exercise(nil), result.Plan.Today...)
	ctx = context.WithoutCancel(ctx)

	s.archives.Add(1)
	go func() {
		defer s.archives.Done()
		ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
		defer cancel()
		if _, err := s.plans.Create(ctx, record); err != nil {
			observability.RecordArchiveFailure()
			s.logger.Warn("failed to archive plan", zap.String("plan_id", record.PlanID), zap.Error(err))
		}
	}()
}

func failureReason(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, llm.ErrRemoteDisabled):
		return observability.ReasonDisabled
	case errors.Is(err, context.DeadlineExceeded):
		return observability.ReasonTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return observability.ReasonTimeout
	case errors.Is(err, llm.ErrUpstreamStatus):
		return observability.ReasonUpstream
	case errors.Is(err, llm.ErrContractViolation):
		return observability.ReasonContract
	default:
		return observability.ReasonTransport
	}
}
