package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScriptExecutor struct {
	mock.Mock
}

func (m *mockScriptExecutor) Scripts() []service.Script {
	args := m.Called()
	return args.Get(0).([]service.Script)
}

func (m *mockScriptExecutor) Run(ctx context.Context, name string) (*service.ScriptResult, error) {
	args := m.Called(ctx, name)
	result, _ := args.Get(0).(*service.ScriptResult)
	return result, args.Error(1)
}

func TestScriptUsecase_List(t *testing.T) {
	env := newTestEnv(t)
	runner := new(mockScriptExecutor)
	runner.On("Scripts").Return([]service.Script{{Name: "seed", Description: "Seed data", Args: []string{"seed"}}})

	list := NewScriptUsecase(env.db, env.log, runner, env.audit).List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, "seed", list[0].Name)
	assert.Equal(t, "Seed data", list[0].Description)
}

func TestScriptUsecase_RunAuditsResult(t *testing.T) {
	env := newTestEnv(t)
	actor := uuid.New()
	ctx := actorContext(actor)

	runner := new(mockScriptExecutor)
	runner.On("Run", ctx, "seed").Return(&service.ScriptResult{
		Name:     "seed",
		Command:  "/bin/clinic seed",
		ExitCode: 0,
		Stdout:   "ok\n",
		Duration: 1500 * time.Millisecond,
	}, nil)

	resp, err := NewScriptUsecase(env.db, env.log, runner, env.audit).Run(ctx, "seed")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", resp.Stdout)
	assert.Equal(t, int64(1500), resp.DurationMS)

	log := env.lastAudit(t, entity.AuditActionScriptRun)
	require.NotNil(t, log.UserID)
	assert.Equal(t, actor, *log.UserID)
	assert.Equal(t, "seed", log.Metadata["name"])
	assert.EqualValues(t, 1500, log.Metadata["duration_ms"])
	runner.AssertExpectations(t)
}

func TestScriptUsecase_RunFailureKeepsOutput(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())

	runner := new(mockScriptExecutor)
	runner.On("Run", ctx, "migrate").Return(&service.ScriptResult{Name: "migrate", ExitCode: 1, Stderr: "boom"}, service.ErrScriptFailed)

	resp, err := NewScriptUsecase(env.db, env.log, runner, env.audit).Run(ctx, "migrate")
	assert.ErrorIs(t, err, service.ErrScriptFailed)
	require.NotNil(t, resp)
	assert.Equal(t, "boom", resp.Stderr)
	assert.Equal(t, 1, resp.ExitCode)
	assert.Equal(t, int64(1), env.auditCount(t, entity.AuditActionScriptRun))
}

func TestScriptUsecase_RunStartFailureIsAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())

	runner := new(mockScriptExecutor)
	runner.On("Run", ctx, "seed").Return(&service.ScriptResult{
		Name:     "seed",
		Command:  "/missing/clinic seed",
		ExitCode: -1,
		Stderr:   "fork/exec /missing/clinic: no such file or directory",
	}, service.ErrScriptStart)

	resp, err := NewScriptUsecase(env.db, env.log, runner, env.audit).Run(ctx, "seed")
	assert.ErrorIs(t, err, service.ErrScriptStart)
	require.NotNil(t, resp)
	assert.Equal(t, -1, resp.ExitCode)
	assert.Contains(t, resp.Stderr, "no such file or directory")

	log := env.lastAudit(t, entity.AuditActionScriptRun)
	assert.EqualValues(t, -1, log.Metadata["exit_code"])
}

func TestScriptUsecase_RunRejectedIsNotAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())

	runner := new(mockScriptExecutor)
	runner.On("Run", ctx, "rm-rf").Return(nil, service.ErrScriptNotFound)

	resp, err := NewScriptUsecase(env.db, env.log, runner, env.audit).Run(ctx, "rm-rf")
	assert.ErrorIs(t, err, service.ErrScriptNotFound)
	assert.Nil(t, resp)
	assert.Zero(t, env.auditCount(t, entity.AuditActionScriptRun))
}
