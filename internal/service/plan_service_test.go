package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/llm"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const advancedMuscle = `{"goal":"muscle","experience":"advanced","days":5,"equipment":"fullgym","session":50,"focus":""}`

func remotePlan() *domain.Plan {
	plan := LocalGeneratePlan(domain.DefaultAnswers())
	plan.ID = "plan-from-model"
	plan.Name = "Model Plan"
	return &plan
}

func TestGeneratePlanRemoteSuccess(t *testing.T) {
	remote := &fakeSynthesizer{plan: remotePlan()}
	repo := newMemPlanRepo()
	svc := NewPlanService(remote, time.Second, repo, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(advancedMuscle), "user-1")
	require.NoError(t, err)
	require.NoError(t, svc.Shutdown(context.Background()))

	assert.Equal(t, domain.PlanSourceRemote, result.Source)
	assert.False(t, result.Fallback())
	assert.NoError(t, result.RemoteErr)
	assert.Equal(t, "Model Plan", result.Plan.Name)
	assert.Regexp(t, planIDPattern, result.Plan.ID)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, domain.GoalMuscle, remote.seen.Goal)

	rec, err := repo.GetByPlanID(context.Background(), result.Plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, domain.PlanSourceRemote, rec.Source)
	assert.Equal(t, 5, rec.Answers.Days)
}

func TestGeneratePlanRemoteErrorFallsBack(t *testing.T) {
	remote := &fakeSynthesizer{err: errors.New("connection reset")}
	svc := NewPlanService(remote, time.Second, nil, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(advancedMuscle), "")
	require.NoError(t, err)

	assert.True(t, result.Fallback())
	assert.EqualError(t, result.RemoteErr, "connection reset")
	assert.Equal(t, "Hypertrophy", result.Plan.Name)
	assert.Equal(t, domain.TierEmerald, result.Plan.Tier)
	assert.Equal(t, 6, result.Plan.Level)
	assert.Equal(t, 5, result.Plan.WeeklyWorkouts)
	assert.Equal(t, "5 x 8–10", result.Plan.Today[0].Scheme)
	assert.Equal(t, "10–12 min", result.Plan.Today[0].Cap)
}

func TestGeneratePlanDisabledRemoteFallsBack(t *testing.T) {
	svc := NewPlanService(llm.DisabledSynthesizer{}, 0, nil, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(`{}`), "")
	require.NoError(t, err)
	assert.True(t, result.Fallback())
	assert.ErrorIs(t, result.RemoteErr, llm.ErrRemoteDisabled)
	assert.Equal(t, "Custom", result.Plan.Name)
}

func TestGeneratePlanNilRemotePlanIsContractViolation(t *testing.T) {
	svc := NewPlanService(&fakeSynthesizer{}, time.Second, nil, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(`{}`), "")
	require.NoError(t, err)
	assert.True(t, result.Fallback())
	assert.ErrorIs(t, result.RemoteErr, llm.ErrContractViolation)
}

func TestGeneratePlanStrictFailureSkipsRemote(t *testing.T) {
	remote := &fakeSynthesizer{plan: remotePlan()}
	svc := NewPlanService(remote, time.Second, nil, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(`{"goal":"strength","days":"6"}`), "")
	require.NoError(t, err)

	assert.Equal(t, 0, remote.calls)
	assert.True(t, result.Fallback())
	assert.ErrorIs(t, result.RemoteErr, ErrInvalidAnswers)
	// Lenient recovery keeps the repairable days answer.
	assert.Equal(t, 6, result.Answers.Days)
	assert.Equal(t, domain.GoalUnset, result.Answers.Goal)
	assert.Equal(t, domain.TierEmerald, result.Plan.Tier)
}

func TestGeneratePlanNonObjectBodyUsesDefaults(t *testing.T) {
	svc := NewPlanService(&fakeSynthesizer{plan: remotePlan()}, time.Second, nil, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(`[1,2,3]`), "")
	require.NoError(t, err)
	assert.True(t, result.Fallback())
	assert.Equal(t, domain.DefaultAnswers(), result.Answers)
	assert.Equal(t, "Custom", result.Plan.Name)
}

func TestGeneratePlanMalformedBody(t *testing.T) {
	remote := &fakeSynthesizer{plan: remotePlan()}
	repo := newMemPlanRepo()
	svc := NewPlanService(remote, time.Second, repo, nil)

	for _, body := range []string{"", "{", "not json", `{"goal":"muscle"`} {
		result, err := svc.GeneratePlan(context.Background(), []byte(body), "")
		assert.ErrorIs(t, err, ErrMalformedRequest, "body %q", body)
		assert.Nil(t, result)
	}
	assert.Equal(t, 0, remote.calls)
	assert.Empty(t, repo.records)
}

func TestGeneratePlanRemoteTimeout(t *testing.T) {
	slow := synthesizerFunc(func(ctx context.Context, _ domain.Answers) (*domain.Plan, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	svc := NewPlanService(slow, 20*time.Millisecond, nil, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(`{}`), "")
	require.NoError(t, err)
	assert.True(t, result.Fallback())
	assert.ErrorIs(t, result.RemoteErr, context.DeadlineExceeded)
}

func TestGeneratePlanArchiveFailureIsIgnored(t *testing.T) {
	repo := newMemPlanRepo()
	repo.createErr = errors.New("mongo down")
	svc := NewPlanService(&fakeSynthesizer{plan: remotePlan()}, time.Second, repo, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(`{}`), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanSourceRemote, result.Source)

	require.NoError(t, svc.Shutdown(context.Background()))
	_, err = repo.GetByPlanID(context.Background(), result.Plan.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// slowPlanRepo holds every Create until release is closed.
type slowPlanRepo struct {
	*memPlanRepo
	release chan struct{}
}

func (r *slowPlanRepo) Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	select {
	case <-r.release:
	case <-ctx.Done():
		return primitive.NilObjectID, ctx.Err()
	}
	return r.memPlanRepo.Create(ctx, record)
}

func TestGeneratePlanDoesNotWaitForArchive(t *testing.T) {
	repo := &slowPlanRepo{memPlanRepo: newMemPlanRepo(), release: make(chan struct{})}
	svc := NewPlanService(&fakeSynthesizer{plan: remotePlan()}, time.Second, repo, nil)

	result, err := svc.GeneratePlan(context.Background(), []byte(advancedMuscle), "user-1")
	require.NoError(t, err)
	_, err = repo.GetByPlanID(context.Background(), result.Plan.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, svc.Shutdown(ctx), context.DeadlineExceeded)

	close(repo.release)
	require.NoError(t, svc.Shutdown(context.Background()))
	rec, err := repo.GetByPlanID(context.Background(), result.Plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.UserID)
}

func TestGeneratePlanArchiveSurvivesCanceledRequest(t *testing.T) {
	repo := newMemPlanRepo()
	svc := NewPlanService(&fakeSynthesizer{plan: remotePlan()}, time.Second, repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	result, err := svc.GeneratePlan(ctx, []byte(advancedMuscle), "user-1")
	require.NoError(t, err)
	cancel()

	require.NoError(t, svc.Shutdown(context.Background()))
	_, err = repo.GetByPlanID(context.Background(), result.Plan.ID)
	assert.NoError(t, err)
}

func TestFallbackRunsLocalSynthesizer(t *testing.T) {
	svc := NewPlanService(llm.DisabledSynthesizer{}, time.Second, nil, nil)
	svc.(*planService).local = synthesizerFunc(func(_ context.Context, a domain.Answers) (*domain.Plan, error) {
		plan := LocalGeneratePlan(a)
		plan.Name = "Local Stub"
		return &plan, nil
	})

	result, err := svc.GeneratePlan(context.Background(), []byte(advancedMuscle), "")
	require.NoError(t, err)
	assert.True(t, result.Fallback())
	assert.Equal(t, "Local Stub", result.Plan.Name)
	assert.Equal(t, domain.TierEmerald, result.Plan.Tier)
}

func TestFallbackSurvivesLocalSynthesizerFailure(t *testing.T) {
	svc := NewPlanService(llm.DisabledSynthesizer{}, time.Second, nil, nil)
	svc.(*planService).local = synthesizerFunc(func(context.Context, domain.Answers) (*domain.Plan, error) {
		return nil, errors.New("broken")
	})

	result, err := svc.GeneratePlan(context.Background(), []byte(advancedMuscle), "")
	require.NoError(t, err)
	assert.Equal(t, "Hypertrophy", result.Plan.Name)
}

func TestGeneratePlanOverflowingNumberKeepsOtherAnswers(t *testing.T) {
	remote := &fakeSynthesizer{plan: remotePlan()}
	svc := NewPlanService(remote, time.Second, nil, nil)

	body := `{"goal":"muscle","experience":"advanced","days":1e400,"equipment":"fullgym","session":50}`
	result, err := svc.GeneratePlan(context.Background(), []byte(body), "")
	require.NoError(t, err)

	assert.Equal(t, 0, remote.calls)
	assert.True(t, result.Fallback())
	assert.Equal(t, "Hypertrophy", result.Plan.Name)
	assert.Equal(t, domain.TierEmerald, result.Plan.Tier)
	assert.Equal(t, 6, result.Plan.Level)
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{llm.ErrRemoteDisabled, "disabled"},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), "timeout"},
		{fmt.Errorf("%w: 503", llm.ErrUpstreamStatus), "upstream_status"},
		{fmt.Errorf("%w: bad keys", llm.ErrContractViolation), "contract"},
		{errors.New("connection refused"), "transport"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, failureReason(tt.err), "error %v", tt.err)
	}
}

type synthesizerFunc func(ctx context.Context, a domain.Answers) (*domain.Plan, error)

func (f synthesizerFunc) Synthesize(ctx context.Context, a domain.Answers) (*domain.Plan, error) {
	return f(ctx, a)
}
