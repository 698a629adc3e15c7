package bulkdelete

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/pkg/composables"
)

const (
	MessageDeleted      = "BulkDelete.Deleted"
	MessageCheckFailed  = "BulkDelete.CheckFailed"
	MessageCommitFailed = "BulkDelete.Failed"
)

type Options struct {
	Resource  string
	DeleteURL string
	// SuccessCode is the only status marker treated as a successful commit.
	SuccessCode int
	Logger      logrus.FieldLogger
}

// Hooks are the request scoped collaborators of one run. Nil hooks are skipped.
type Hooks struct {
	Reporter  ConflictReporter
	Notifier  Notifier
	Selection SelectionClearer
	Refresher Refresher
}

// Protocol runs the two phase delete: a side-effect free conflict check
// followed by the commit of the identical candidate list.
type Protocol struct {
	gateway Gateway
	opts    Options
}

func New(gateway Gateway, opts Options) *Protocol {
	if opts.SuccessCode == 0 {
		opts.SuccessCode = http.StatusOK
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Protocol{gateway: gateway, opts: opts}
}

func (p *Protocol) Resource() string {
	return p.opts.Resource
}

// Check only runs the first phase. Calling it repeatedly has no side effects.
func (p *Protocol) Check(ctx context.Context, items []Candidate) (CheckResult, error) {
	return p.gateway.CheckDeleteMultiple(ctx, items)
}

// Run logs through the request logger in ctx when there is one.
func (p *Protocol) Run(ctx context.Context, items []Candidate, hooks Hooks) Result {
	base := p.opts.Logger
	if entry, err := composables.TryUseLogger(ctx); err == nil {
		base = entry
	}
	log := base.WithFields(logrus.Fields{
		"resource": p.opts.Resource,
		"count":    len(items),
	})
	result := p.run(ctx, log, items, hooks)
	outcomesTotal.WithLabelValues(p.opts.Resource, string(result.Outcome)).Inc()
	log.WithField("outcome", result.Outcome).Info("bulk delete finished")
	return result
}

func (p *Protocol) run(ctx context.Context, log logrus.FieldLogger, items []Candidate, hooks Hooks) Result {
	if len(items) == 0 {
		return Result{Outcome: OutcomeNothing}
	}

	check, err := p.gateway.CheckDeleteMultiple(ctx, items)
	if err != nil || !check.Success {
		if err != nil {
			log = log.WithError(err)
		}
		log.Warn("bulk delete check failed")
		notify(ctx, hooks.Notifier, Notification{
			Level:     LevelError,
			MessageID: MessageCheckFailed,
			Message:   "Could not verify the selected records.",
		})
		return Result{Outcome: OutcomeCheckFailed}
	}

	if !check.Report.Clean() {
		conflict := Conflict{
			DeleteURL:  p.opts.DeleteURL,
			IDs:        IDs(items),
			Candidates: items,
			HasError:   check.Report.HasError,
			Payload:    check.Report.Payload,
		}
		if hooks.Reporter != nil {
			hooks.Reporter.ReportConflict(ctx, conflict)
		}
		return Result{Outcome: OutcomeConflict, Conflict: &conflict}
	}

	commit, err := p.gateway.DeleteMultiple(ctx, items)
	if err != nil || !commit.Success || commit.StatusCode != p.opts.SuccessCode {
		if err != nil {
			log = log.WithError(err)
		}
		log.WithField("status-code", commit.StatusCode).Warn("bulk delete commit failed")
		notify(ctx, hooks.Notifier, Notification{
			Level:     LevelError,
			MessageID: MessageCommitFailed,
			Message:   "The selected records could not be deleted.",
		})
		return Result{Outcome: OutcomeCommitFailed, Commit: &commit}
	}

	notify(ctx, hooks.Notifier, Notification{
		Level:     LevelSuccess,
		MessageID: MessageDeleted,
		Message:   "The selected records were deleted.",
	})
	if hooks.Selection != nil {
		hooks.Selection.ClearSelection(ctx)
	}
	if hooks.Refresher != nil {
		if err := hooks.Refresher.Refresh(ctx); err != nil {
			log.WithError(err).Warn("bulk delete: refresh after delete failed")
		}
	}
	return Result{Outcome: OutcomeDeleted, Commit: &commit}
}

func notify(ctx context.Context, n Notifier, notification Notification) {
	if n == nil {
		return
	}
	n.Notify(ctx, notification)
}
