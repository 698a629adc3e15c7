package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type LogsService struct {
	actionRepo actionlog.Repository
}

func NewLogsService(actionRepo actionlog.Repository) *LogsService {
	return &LogsService{
		actionRepo: actionRepo,
	}
}

func (s *LogsService) ListActionLogs(
	ctx context.Context,
	params *actionlog.FindParams,
) ([]*actionlog.ActionLog, int64, error) {
	if params == nil {
		params = &actionlog.FindParams{}
	}
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	logs, err := s.actionRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.actionRepo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return logs, count, nil
}

func (s *LogsService) CreateActionLog(ctx context.Context, log *actionlog.ActionLog) error {
	if log == nil {
		return errors.New("action log payload is required")
	}
	if log.Kind == "" {
		return errors.New("action log kind is required")
	}
	return s.actionRepo.Create(ctx, log)
}
