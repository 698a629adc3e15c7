package handlers

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
	"github.com/iota-uz/refconsole/modules/logging/services"
	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/composables"
)

// AuditHandler turns domain events into action log entries. Failures are
// logged and never reach the publisher.
type AuditHandler struct {
	pool    *pgxpool.Pool
	service *services.LogsService
	logger  logrus.FieldLogger
}

func NewAuditHandler(pool *pgxpool.Pool, service *services.LogsService, logger logrus.FieldLogger) *AuditHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuditHandler{pool: pool, service: service, logger: logger}
}

func RegisterAuditHandlers(app application.Application, logger logrus.FieldLogger) {
	h := NewAuditHandler(
		app.DB(),
		app.Service(services.LogsService{}).(*services.LogsService),
		logger,
	)
	app.EventPublisher().Subscribe(h.OnDeleteOutcome)
	app.EventPublisher().Subscribe(h.OnGroupSaved)
}

func (h *AuditHandler) context() context.Context {
	ctx := context.Background()
	if h.pool != nil {
		ctx = composables.WithPool(ctx, h.pool)
	}
	return ctx
}

type deleteOutcomeDetails struct {
	IDs   []string `json:"ids"`
	Error string   `json:"error,omitempty"`
}

func (h *AuditHandler) OnDeleteOutcome(e *bulkdelete.OutcomeEvent) {
	if e == nil || e.Outcome == bulkdelete.OutcomeNothing {
		return
	}
	details := deleteOutcomeDetails{IDs: bulkdelete.IDs(e.Candidates)}
	if e.Err != nil {
		details.Error = e.Err.Error()
	}
	after, err := json.Marshal(details)
	if err != nil {
		h.logger.WithError(err).Warn("action-log: failed to encode delete outcome")
		return
	}
	h.create(&actionlog.ActionLog{
		Kind:     actionlog.KindEvent,
		Resource: e.Resource,
		Action:   "delete-multiple",
		Outcome:  string(e.Outcome),
		After:    after,
	})
}

type groupState struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds"`
}

// OnGroupSaved stores the full state of a created group and the JSON patch of
// an updated one.
func (h *AuditHandler) OnGroupSaved(e *group.SavedEvent) {
	if e == nil {
		return
	}
	entry := &actionlog.ActionLog{
		Kind:     actionlog.KindEvent,
		Resource: "groups",
		Action:   "update",
		Outcome:  "saved",
	}
	var payload any = e.Changes
	if e.Created {
		entry.Action = "create"
		payload = groupState{
			Code:        e.Group.Code(),
			Name:        e.Group.Name(),
			Description: e.Group.Description(),
			MemberIDs:   e.Group.MemberIDs(),
		}
	}
	after, err := json.Marshal(payload)
	if err != nil {
		h.logger.WithError(err).WithField("group", e.Group.ID()).Warn("action-log: failed to encode group save")
		return
	}
	entry.After = after
	entry.Path = e.Group.ID()
	h.create(entry)
}

func (h *AuditHandler) create(entry *actionlog.ActionLog) {
	if err := h.service.CreateActionLog(h.context(), entry); err != nil {
		h.logger.WithError(err).
			WithFields(logrus.Fields{"resource": entry.Resource, "action": entry.Action}).
			Warn("action-log: failed to persist event")
	}
}
