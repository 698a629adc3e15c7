package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
)

type mockActionLogRepo struct {
	lastParams *actionlog.FindParams
	created    []*actionlog.ActionLog
}

func (m *mockActionLogRepo) List(ctx context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, error) {
	m.lastParams = params
	return []*actionlog.ActionLog{{ID: 1, Kind: actionlog.KindEvent}}, nil
}

func (m *mockActionLogRepo) Count(ctx context.Context, params *actionlog.FindParams) (int64, error) {
	return 1, nil
}

func (m *mockActionLogRepo) Create(ctx context.Context, log *actionlog.ActionLog) error {
	m.created = append(m.created, log)
	return nil
}

func TestLogsService_ListActionLogs_DefaultsLimit(t *testing.T) {
	repo := &mockActionLogRepo{}
	svc := NewLogsService(repo)

	logs, count, err := svc.ListActionLogs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, int64(1), count)
	require.Equal(t, defaultListLimit, repo.lastParams.Limit)
}

func TestLogsService_ListActionLogs_CapsLimit(t *testing.T) {
	repo := &mockActionLogRepo{}
	svc := NewLogsService(repo)

	_, _, err := svc.ListActionLogs(context.Background(), &actionlog.FindParams{Limit: 10_000, Offset: -3})
	require.NoError(t, err)
	require.Equal(t, maxListLimit, repo.lastParams.Limit)
	require.Equal(t, 0, repo.lastParams.Offset)
}

func TestLogsService_CreateActionLog_Validates(t *testing.T) {
	repo := &mockActionLogRepo{}
	svc := NewLogsService(repo)

	require.Error(t, svc.CreateActionLog(context.Background(), nil))
	require.Error(t, svc.CreateActionLog(context.Background(), &actionlog.ActionLog{}))
	require.Empty(t, repo.created)

	require.NoError(t, svc.CreateActionLog(context.Background(), &actionlog.ActionLog{Kind: actionlog.KindRequest}))
	require.Len(t, repo.created, 1)
}
