package services

import (
	"bytes"
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/modules/usergroups/domain/entities/user"
	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/eventbus"
	"github.com/iota-uz/refconsole/pkg/serrors"
	"github.com/iota-uz/refconsole/pkg/session"
	"github.com/iota-uz/refconsole/pkg/transfer"
)

var (
	ErrInvalidSide      = serrors.NewError("INVALID_SIDE", "unknown list side", "UserGroups.Errors.InvalidSide")
	ErrInvalidOperation = serrors.NewError("INVALID_OPERATION", "unknown operation", "UserGroups.Errors.InvalidOperation")
	ErrInvalidZone      = serrors.NewError("INVALID_ZONE", "invalid hit-test zone", "UserGroups.Errors.InvalidZone")
	ErrSaveInProgress   = serrors.NewError("SAVE_IN_PROGRESS", "the group is being saved", "UserGroups.Errors.SaveInProgress")
)

type SelectOp string

const (
	SelectAll    SelectOp = "all"
	SelectInvert SelectOp = "invert"
	SelectNone   SelectOp = "none"
	SelectToggle SelectOp = "toggle"
)

type TransferOp string

const (
	TransferMoveAll      TransferOp = "move-all"
	TransferClearAll     TransferOp = "clear-all"
	TransferMoveSelected TransferOp = "move-selected"
)

type MembershipOptions struct {
	PageSize       int
	DragThreshold  float64
	CandidateLimit int
	SessionTTL     time.Duration
	Renderer       transfer.ListRenderer
}

type membershipSession struct {
	id     string
	group  group.Group
	widget *transfer.Widget
	saving bool
}

// MembershipSnapshot is the state of one session after an operation.
type MembershipSnapshot struct {
	ID         string
	Group      group.Group
	Available  transfer.ListView
	Assigned   transfer.ListView
	TargetKeys []string
	DragState  transfer.State
	Overlay    *transfer.Overlay
	Disabled   bool
	// Applied is false when the operation changed nothing, e.g. a stale
	// refresh response or a drop outside every zone.
	Applied bool
}

// MembershipService keeps assignment widgets in server-side sessions. Each
// session is serialized by its entry lock; upstream calls run outside it.
type MembershipService struct {
	groups    *GroupService
	users     user.Repository
	publisher eventbus.EventBus
	store     *session.Store[*membershipSession]
	opts      MembershipOptions
	log       logrus.FieldLogger
}

func NewMembershipService(groups *GroupService, users user.Repository, publisher eventbus.EventBus, opts MembershipOptions) *MembershipService {
	if opts.PageSize <= 0 {
		opts.PageSize = transfer.DefaultPageSize
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = 500
	}
	return &MembershipService{
		groups:    groups,
		users:     users,
		publisher: publisher,
		store:     session.NewStore[*membershipSession](opts.SessionTTL),
		opts:      opts,
		log:       logrus.StandardLogger().WithField("component", "membership-sessions"),
	}
}

// RunSweeper drops expired sessions every interval until ctx is done.
func (s *MembershipService) RunSweeper(ctx context.Context, interval time.Duration) {
	s.store.Run(ctx, interval, func(dropped int) {
		if dropped > 0 {
			s.log.WithField("dropped", dropped).Debug("expired sessions dropped")
		}
		sessionsOpen.Set(float64(s.store.Len()))
	})
}

func (s *MembershipService) logger(ctx context.Context) logrus.FieldLogger {
	if entry, err := composables.TryUseLogger(ctx); err == nil {
		return entry
	}
	return s.log
}

// fetchCandidates degrades to an empty list when the upstream fails.
func (s *MembershipService) fetchCandidates(ctx context.Context, params user.FindParams) []transfer.Candidate {
	params.Limit = s.opts.CandidateLimit
	users, err := s.users.Search(ctx, &params)
	if err != nil {
		s.logger(ctx).WithError(err).Warn("candidate fetch failed")
		return []transfer.Candidate{}
	}
	candidates := make([]transfer.Candidate, len(users))
	for i, u := range users {
		candidates[i] = u.Candidate()
	}
	return candidates
}

// Open starts a session for groupID, or for a new group when groupID is empty.
func (s *MembershipService) Open(ctx context.Context, groupID string, params user.FindParams) (MembershipSnapshot, error) {
	var g group.Group
	if groupID != "" {
		var err error
		g, err = s.groups.GetByID(ctx, groupID)
		if err != nil {
			return MembershipSnapshot{}, err
		}
	}
	candidates := s.fetchCandidates(ctx, params)

	sess := &membershipSession{group: g}
	sess.widget = transfer.NewWidget(candidates, g.MemberIDs(), transfer.Options{
		PageSize:      s.opts.PageSize,
		DragThreshold: s.opts.DragThreshold,
		FilterFields:  []string{user.FieldUsername, user.FieldFullName, user.FieldEmail},
		LabelField:    user.FieldFullName,
		Renderer:      s.opts.Renderer,
		OnChange: func(targetKeys []string, direction transfer.Direction, moved []string) {
			if s.publisher == nil {
				return
			}
			s.publisher.Publish(&group.MembershipChangedEvent{
				SessionID:  sess.id,
				GroupID:    sess.group.ID(),
				TargetKeys: targetKeys,
				Direction:  string(direction),
				Moved:      moved,
			})
		},
	})
	entry := s.store.Create(sess)
	sessionsOpen.Set(float64(s.store.Len()))

	var snap MembershipSnapshot
	err := entry.Do(func(sess *membershipSession) error {
		sess.id = entry.ID()
		snap = sess.snapshot(true)
		return nil
	})
	return snap, err
}

func (s *MembershipService) Close(id string) bool {
	ok := s.store.Delete(id)
	sessionsOpen.Set(float64(s.store.Len()))
	return ok
}

func (s *MembershipService) do(id string, fn func(sess *membershipSession) (bool, error)) (MembershipSnapshot, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return MembershipSnapshot{}, err
	}
	var snap MembershipSnapshot
	err = entry.Do(func(sess *membershipSession) error {
		applied, err := fn(sess)
		if err != nil {
			return err
		}
		snap = sess.snapshot(applied)
		return nil
	})
	return snap, err
}

func (s *MembershipService) Get(id string) (MembershipSnapshot, error) {
	return s.do(id, func(*membershipSession) (bool, error) { return true, nil })
}

// Render writes the HTML fragment of one list.
func (s *MembershipService) Render(ctx context.Context, id string, side transfer.Side) ([]byte, error) {
	if !side.Valid() {
		return nil, ErrInvalidSide
	}
	entry, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = entry.Do(func(sess *membershipSession) error {
		return sess.widget.Render(side).Render(ctx, &buf)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Refresh refetches the candidates. Only the response to the most recently
// issued refresh is installed; older ones are dropped with Applied false.
func (s *MembershipService) Refresh(ctx context.Context, id string, params user.FindParams) (MembershipSnapshot, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return MembershipSnapshot{}, err
	}
	var ticket transfer.Ticket
	if err := entry.Do(func(sess *membershipSession) error {
		ticket = sess.widget.BeginRefresh()
		return nil
	}); err != nil {
		return MembershipSnapshot{}, err
	}

	candidates := s.fetchCandidates(ctx, params)

	var snap MembershipSnapshot
	err = entry.Do(func(sess *membershipSession) error {
		applied := sess.widget.ApplyRefresh(ticket, candidates)
		if !applied {
			staleResponsesTotal.Inc()
			s.logger(ctx).WithField("ticket", ticket).Debug("stale candidate response dropped")
		}
		snap = sess.snapshot(applied)
		return nil
	})
	return snap, err
}

func (s *MembershipService) Filter(id string, side transfer.Side, query string) (MembershipSnapshot, error) {
	return s.do(id, func(sess *membershipSession) (bool, error) {
		if !sess.widget.SetFilter(side, query) {
			return false, ErrInvalidSide
		}
		return true, nil
	})
}

func (s *MembershipService) Page(id string, side transfer.Side, page int) (MembershipSnapshot, error) {
	return s.do(id, func(sess *membershipSession) (bool, error) {
		if !sess.widget.SetPage(side, page) {
			return false, ErrInvalidSide
		}
		return true, nil
	})
}

func (s *MembershipService) Select(id string, side transfer.Side, op SelectOp, key string, selected bool) (MembershipSnapshot, error) {
	if !side.Valid() {
		return MembershipSnapshot{}, ErrInvalidSide
	}
	return s.do(id, func(sess *membershipSession) (bool, error) {
		w := sess.widget
		switch op {
		case SelectAll:
			return w.SelectAll(side), nil
		case SelectInvert:
			return w.InvertSelection(side), nil
		case SelectNone:
			return w.SelectNone(side), nil
		case SelectToggle:
			return w.ToggleSelection(side, key, selected), nil
		default:
			return false, ErrInvalidOperation
		}
	})
}

// Transfer runs a bulk membership change. from is only read by move-selected.
func (s *MembershipService) Transfer(id string, op TransferOp, from transfer.Side) (MembershipSnapshot, error) {
	return s.do(id, func(sess *membershipSession) (bool, error) {
		var moved []string
		var kind string
		switch op {
		case TransferMoveAll:
			moved, kind = sess.widget.MoveAll(), mutationMoveAll
		case TransferClearAll:
			moved, kind = sess.widget.ClearAll(), mutationClearAll
		case TransferMoveSelected:
			if !from.Valid() {
				return false, ErrInvalidSide
			}
			moved, kind = sess.widget.MoveSelected(from), mutationMoveSelected
		default:
			return false, ErrInvalidOperation
		}
		if len(moved) == 0 {
			return false, nil
		}
		mutationsTotal.WithLabelValues(kind).Inc()
		return true, nil
	})
}

// SetZones replaces the hit-test zones of both lists. Zones may be sent
// explicitly or computed from a per-side row layout.
func (s *MembershipService) SetZones(id string, zones []transfer.Zone, layouts map[transfer.Side]transfer.Layout) (MembershipSnapshot, error) {
	bySide := map[transfer.Side][]transfer.Zone{}
	for _, z := range zones {
		if !z.Side.Valid() || !z.Kind.Valid() {
			return MembershipSnapshot{}, ErrInvalidZone
		}
		bySide[z.Side] = append(bySide[z.Side], z)
	}
	for side := range layouts {
		if !side.Valid() {
			return MembershipSnapshot{}, ErrInvalidSide
		}
	}
	return s.do(id, func(sess *membershipSession) (bool, error) {
		for _, side := range []transfer.Side{transfer.SideAvailable, transfer.SideAssigned} {
			if l, ok := layouts[side]; ok {
				sess.widget.LayoutZones(side, l)
				continue
			}
			sess.widget.RegisterZones(side, bySide[side])
		}
		return true, nil
	})
}

// Pointer feeds one pointer event to the drag engine of the session.
func (s *MembershipService) Pointer(id string, ev transfer.PointerEvent) (MembershipSnapshot, error) {
	return s.do(id, func(sess *membershipSession) (bool, error) {
		drop, applied := sess.widget.Pointer(ev)
		if drop == nil {
			return false, nil
		}
		if applied {
			kind := mutationTransfer
			if drop.Over != nil && drop.Over.Side == drop.Source {
				kind = mutationReorder
			}
			mutationsTotal.WithLabelValues(kind).Inc()
		}
		return applied, nil
	})
}

// Save submits the group fields with the current target keys. The widget is
// disabled until the upstream answers; a failed save leaves the session as it
// was so the user can retry.
func (s *MembershipService) Save(ctx context.Context, id string, dto *group.SaveDTO) (MembershipSnapshot, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return MembershipSnapshot{}, err
	}
	var before, next group.Group
	err = entry.Do(func(sess *membershipSession) error {
		if sess.saving {
			return ErrSaveInProgress
		}
		sess.saving = true
		sess.widget.SetDisabled(true)
		before = sess.group
		next = before.Update(dto.Fields()).WithMembers(sess.widget.TargetKeys())
		return nil
	})
	if err != nil {
		return MembershipSnapshot{}, err
	}

	saved, saveErr := s.groups.Save(ctx, before, next)

	var snap MembershipSnapshot
	err = entry.Do(func(sess *membershipSession) error {
		sess.saving = false
		sess.widget.SetDisabled(false)
		if saveErr == nil {
			sess.group = saved
		}
		snap = sess.snapshot(saveErr == nil)
		return nil
	})
	if saveErr != nil {
		s.logger(ctx).WithError(saveErr).WithField("session", id).Warn("group save failed")
		return snap, saveErr
	}
	if err != nil {
		return MembershipSnapshot{Group: saved, Applied: true}, nil
	}
	return snap, nil
}

func (sess *membershipSession) snapshot(applied bool) MembershipSnapshot {
	w := sess.widget
	snap := MembershipSnapshot{
		ID:         sess.id,
		Group:      sess.group,
		Available:  w.View(transfer.SideAvailable),
		Assigned:   w.View(transfer.SideAssigned),
		TargetKeys: w.TargetKeys(),
		DragState:  w.Engine().State(),
		Disabled:   w.Disabled(),
		Applied:    applied,
	}
	if overlay, ok := w.Engine().Overlay(); ok {
		snap.Overlay = &overlay
	}
	return snap
}
