package persistence

import (
	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
	"github.com/iota-uz/refconsole/modules/logging/infrastructure/persistence/models"
)

func toDBActionLog(log *actionlog.ActionLog) *models.ActionLog {
	return &models.ActionLog{
		ID:        log.ID,
		Kind:      string(log.Kind),
		Method:    log.Method,
		Path:      log.Path,
		Resource:  log.Resource,
		Action:    log.Action,
		Outcome:   log.Outcome,
		Before:    nullableJSON(log.Before),
		After:     nullableJSON(log.After),
		RequestID: log.RequestID,
		UserAgent: log.UserAgent,
		IP:        log.IP,
		CreatedAt: log.CreatedAt,
	}
}

func toDomainActionLog(dbLog *models.ActionLog) *actionlog.ActionLog {
	return &actionlog.ActionLog{
		ID:        dbLog.ID,
		Kind:      actionlog.Kind(dbLog.Kind),
		Method:    dbLog.Method,
		Path:      dbLog.Path,
		Resource:  dbLog.Resource,
		Action:    dbLog.Action,
		Outcome:   dbLog.Outcome,
		Before:    dbLog.Before,
		After:     dbLog.After,
		RequestID: dbLog.RequestID,
		UserAgent: dbLog.UserAgent,
		IP:        dbLog.IP,
		CreatedAt: dbLog.CreatedAt,
	}
}

// nullableJSON stores absent payloads as SQL NULL rather than an empty jsonb.
func nullableJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
