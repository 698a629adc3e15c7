package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
	"github.com/iota-uz/refconsole/modules/logging/infrastructure/persistence/models"
	"github.com/iota-uz/refconsole/pkg/composables"
)

const actionLogColumns = `id, kind, method, path, resource, action, outcome, before, after, request_id, user_agent, ip, created_at`

type ActionLogRepository struct{}

func NewActionLogRepository() actionlog.Repository {
	return &ActionLogRepository{}
}

func (r *ActionLogRepository) List(ctx context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildActionLogFilters(params)
	query := `SELECT ` + actionLogColumns + ` FROM action_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if params != nil {
		query += " " + formatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*actionlog.ActionLog
	for rows.Next() {
		var row models.ActionLog
		if err := rows.Scan(
			&row.ID,
			&row.Kind,
			&row.Method,
			&row.Path,
			&row.Resource,
			&row.Action,
			&row.Outcome,
			&row.Before,
			&row.After,
			&row.RequestID,
			&row.UserAgent,
			&row.IP,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainActionLog(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ActionLogRepository) Count(ctx context.Context, params *actionlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildActionLogFilters(params)
	query := `SELECT COUNT(*) FROM action_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ActionLogRepository) Create(ctx context.Context, log *actionlog.ActionLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	dbRow := toDBActionLog(log)
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}

	return tx.QueryRow(
		ctx,
		`INSERT INTO action_logs (kind, method, path, resource, action, outcome, before, after, request_id, user_agent, ip, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`,
		dbRow.Kind,
		dbRow.Method,
		dbRow.Path,
		dbRow.Resource,
		dbRow.Action,
		dbRow.Outcome,
		dbRow.Before,
		dbRow.After,
		dbRow.RequestID,
		dbRow.UserAgent,
		dbRow.IP,
		dbRow.CreatedAt,
	).Scan(&log.ID, &log.CreatedAt)
}

func formatLimitOffset(limit, offset int) string {
	var parts []string
	if limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", limit))
	}
	if offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET %d", offset))
	}
	return strings.Join(parts, " ")
}

func buildActionLogFilters(params *actionlog.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if params.Kind != "" {
		add("kind = $%d", string(params.Kind))
	}
	if resource := strings.TrimSpace(params.Resource); resource != "" {
		add("resource = $%d", resource)
	}
	if action := strings.TrimSpace(params.Action); action != "" {
		add("LOWER(action) = LOWER($%d)", action)
	}
	if path := strings.TrimSpace(params.Path); path != "" {
		add("path ILIKE $%d", "%"+path+"%")
	}
	if params.From != nil && !params.From.IsZero() {
		add("created_at >= $%d", *params.From)
	}
	if params.To != nil && !params.To.IsZero() {
		add("created_at <= $%d", *params.To)
	}
	return where, args
}
