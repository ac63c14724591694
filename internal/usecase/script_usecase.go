package usecase

import (
	"context"
	"errors"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScriptExecutor is satisfied by *service.ScriptRunner.
type ScriptExecutor interface {
	Scripts() []service.Script
	Run(ctx context.Context, name string) (*service.ScriptResult, error)
}

type ScriptUsecase interface {
	List(ctx context.Context) []dto.ScriptResponse
	// Run returns the captured result together with ErrScriptTimeout,
	// ErrScriptFailed or ErrScriptStart so callers can still show the output.
	Run(ctx context.Context, name string) (*dto.ScriptRunResponse, error)
}

type scriptUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	runner       ScriptExecutor
	auditService service.AuditService
}

func NewScriptUsecase(db *gorm.DB, log *logrus.Logger, runner ScriptExecutor, auditService service.AuditService) ScriptUsecase {
	return &scriptUsecase{
		db:           db,
		log:          log,
		runner:       runner,
		auditService: auditService,
	}
}

func (u *scriptUsecase) List(ctx context.Context) []dto.ScriptResponse {
	scripts := u.runner.Scripts()
	resp := make([]dto.ScriptResponse, len(scripts))
	for i, s := range scripts {
		resp[i] = dto.ScriptResponse{Name: s.Name, Description: s.Description}
	}
	return resp
}

func (u *scriptUsecase) Run(ctx context.Context, name string) (*dto.ScriptRunResponse, error) {
	result, runErr := u.runner.Run(ctx, name)
	if result == nil {
		return nil, runErr
	}

	metadata := entity.JSON{
		"name":        result.Name,
		"exit_code":   result.ExitCode,
		"timed_out":   result.TimedOut,
		"duration_ms": result.Duration.Milliseconds(),
	}
	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), actorID(ctx), entity.AuditActionScriptRun, metadata); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	resp := &dto.ScriptRunResponse{
		Name:            result.Name,
		Command:         result.Command,
		ExitCode:        result.ExitCode,
		Stdout:          result.Stdout,
		Stderr:          result.Stderr,
		StdoutTruncated: result.StdoutTruncated,
		StderrTruncated: result.StderrTruncated,
		TimedOut:        result.TimedOut,
		StartedAt:       result.StartedAt,
		DurationMS:      result.Duration.Milliseconds(),
	}

	if runErr != nil && !errors.Is(runErr, service.ErrScriptTimeout) &&
		!errors.Is(runErr, service.ErrScriptFailed) && !errors.Is(runErr, service.ErrScriptStart) {
		return nil, runErr
	}
	return resp, runErr
}
