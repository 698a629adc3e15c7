package transfer

import (
	"github.com/a-h/templ"
)

const DefaultPageSize = 10

// ChangeFunc is called after every membership mutation with the full target
// key list, the direction of the move and the ids that moved.
type ChangeFunc func(targetKeys []string, direction Direction, moved []string)

type Options struct {
	PageSize      int
	DragThreshold float64
	// FilterFields limits filtering to these display fields.
	FilterFields []string
	// LabelField is the display field rendered as the row label.
	LabelField string
	OnChange   ChangeFunc
	Renderer   ListRenderer
}

type list struct {
	order     []string
	filter    Filter
	page      int
	selection *Selection
}

// Widget is the dual-list assignment widget. It is not safe for concurrent
// use; callers serialize access per widget.
type Widget struct {
	opts       Options
	store      *CandidateStore
	membership *MembershipSet
	lists      map[Side]*list
	engine     *Engine
	disabled   bool
}

func NewWidget(candidates []Candidate, members []string, opts Options) *Widget {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = DefaultActivationDistance
	}
	if opts.Renderer == nil {
		opts.Renderer = DefaultListRenderer
	}
	w := &Widget{
		opts:       opts,
		store:      NewCandidateStore(candidates),
		membership: NewMembershipSet(members...),
		lists:      make(map[Side]*list, 2),
		engine:     NewEngine(opts.DragThreshold, NewZoneTable()),
	}
	for _, side := range []Side{SideAvailable, SideAssigned} {
		w.lists[side] = &list{
			filter:    Filter{Fields: opts.FilterFields},
			page:      1,
			selection: NewSelection(),
		}
	}
	w.repartition()
	return w
}

func (w *Widget) Candidates() *CandidateStore {
	return w.store
}

func (w *Widget) Membership() *MembershipSet {
	return w.membership
}

func (w *Widget) Engine() *Engine {
	return w.engine
}

func (w *Widget) Disabled() bool {
	return w.disabled
}

// SetDisabled turns every gesture into a no-op and aborts an ongoing drag.
func (w *Widget) SetDisabled(disabled bool) {
	w.disabled = disabled
	if disabled {
		w.engine.Cancel()
	}
}

func (w *Widget) Order(side Side) []string {
	l, ok := w.lists[side]
	if !ok {
		return nil
	}
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// TargetKeys is the assigned list in its current order followed by members
// that are not among the candidates.
func (w *Widget) TargetKeys() []string {
	assigned := w.lists[SideAssigned].order
	keys := make([]string, 0, w.membership.Len())
	keys = append(keys, assigned...)
	for _, id := range w.membership.IDs() {
		if !w.store.Has(id) {
			keys = append(keys, id)
		}
	}
	return keys
}

func (w *Widget) repartition() {
	available, assigned := Partition(w.store.Items(), w.membership)
	w.lists[SideAvailable].order = available
	w.lists[SideAssigned].order = assigned
	for _, l := range w.lists {
		l.selection.Retain(l.order)
	}
}

func (w *Widget) filtered(side Side) []string {
	l := w.lists[side]
	return l.filter.Apply(l.order, w.store)
}

// Visible returns the keys rendered on the current page of side.
func (w *Widget) Visible(side Side) []string {
	l, ok := w.lists[side]
	if !ok {
		return nil
	}
	return Paginate(w.filtered(side), l.page, w.opts.PageSize).Keys
}

type ListView struct {
	Side        Side        `json:"side"`
	Items       []Candidate `json:"items"`
	Page        Page        `json:"pagination"`
	Query       string      `json:"query"`
	Selected    []string    `json:"selected"`
	Count       int         `json:"count"`
	Placeholder bool        `json:"placeholder"`
	Disabled    bool        `json:"disabled"`
}

func (w *Widget) View(side Side) ListView {
	l, ok := w.lists[side]
	if !ok {
		return ListView{Side: side}
	}
	page := Paginate(w.filtered(side), l.page, w.opts.PageSize)
	items := make([]Candidate, 0, len(page.Keys))
	for _, id := range page.Keys {
		if c, ok := w.store.Get(id); ok {
			items = append(items, c)
		}
	}
	return ListView{
		Side:        side,
		Items:       items,
		Page:        page,
		Query:       l.filter.Query,
		Selected:    l.selection.Keys(l.order),
		Count:       len(l.order),
		Placeholder: len(page.Keys) == 0,
		Disabled:    w.disabled,
	}
}

// SetFilter changes the query of one list and returns it to its first page.
func (w *Widget) SetFilter(side Side, query string) bool {
	l, ok := w.lists[side]
	if !ok {
		return false
	}
	l.filter.Query = query
	l.page = 1
	return true
}

func (w *Widget) SetPage(side Side, number int) bool {
	l, ok := w.lists[side]
	if !ok {
		return false
	}
	l.page = Paginate(w.filtered(side), number, w.opts.PageSize).Number
	return true
}

func (w *Widget) SelectAll(side Side) bool {
	if w.disabled || !side.Valid() {
		return false
	}
	w.lists[side].selection.SelectAll(w.Visible(side))
	return true
}

func (w *Widget) InvertSelection(side Side) bool {
	if w.disabled || !side.Valid() {
		return false
	}
	w.lists[side].selection.Invert(w.Visible(side))
	return true
}

func (w *Widget) SelectNone(side Side) bool {
	if w.disabled || !side.Valid() {
		return false
	}
	w.lists[side].selection.Clear()
	return true
}

// ToggleSelection ignores keys that are not in the list.
func (w *Widget) ToggleSelection(side Side, key string, selected bool) bool {
	if w.disabled || !side.Valid() {
		return false
	}
	l := w.lists[side]
	if indexOf(l.order, key) < 0 {
		return false
	}
	l.selection.Toggle(key, selected)
	return true
}

func (w *Widget) resetPages() {
	for _, l := range w.lists {
		l.page = 1
	}
}

// MoveAll assigns every available candidate regardless of the active filter.
func (w *Widget) MoveAll() []string {
	if w.disabled {
		return nil
	}
	moved := w.membership.AddAll(w.lists[SideAvailable].order)
	w.resetPages()
	w.repartition()
	w.emit(DirectionRight, moved)
	return moved
}

// ClearAll empties the membership set, including members that are not among
// the candidates.
func (w *Widget) ClearAll() []string {
	if w.disabled {
		return nil
	}
	moved := w.membership.RemoveAll(w.membership.IDs())
	w.resetPages()
	w.repartition()
	w.emit(DirectionLeft, moved)
	return moved
}

// MoveSelected moves the checked rows of from into the other list.
func (w *Widget) MoveSelected(from Side) []string {
	if w.disabled || !from.Valid() {
		return nil
	}
	l := w.lists[from]
	keys := l.selection.Keys(l.order)
	var moved []string
	if from == SideAvailable {
		moved = w.membership.AddAll(keys)
	} else {
		moved = w.membership.RemoveAll(keys)
	}
	for _, id := range moved {
		l.selection.Toggle(id, false)
	}
	w.resetPages()
	w.repartition()
	w.emit(directionInto(from.Opposite()), moved)
	return moved
}

// Drop applies the outcome of a drag. A drop outside every zone or of an id
// that is no longer in its source list changes nothing.
func (w *Widget) Drop(d Drop) bool {
	if w.disabled || d.Over == nil {
		return false
	}
	src, ok := w.lists[d.Source]
	if !ok {
		return false
	}
	from := indexOf(src.order, d.ActiveID)
	if from < 0 {
		return false
	}
	over := *d.Over
	if over.Side == d.Source {
		if over.Kind != ZoneRow || over.ID == d.ActiveID {
			return false
		}
		to := indexOf(src.order, over.ID)
		if to < 0 {
			return false
		}
		src.order = ArrayMove(src.order, from, to)
		return true
	}
	if !over.Side.Valid() {
		return false
	}
	if over.Side == SideAssigned {
		w.membership.Add(d.ActiveID)
	} else {
		w.membership.Remove(d.ActiveID)
	}
	w.repartition()
	w.emit(directionInto(over.Side), []string{d.ActiveID})
	return true
}

// Pointer feeds a pointer event to the drag engine and applies the resulting
// drop. The returned drop is nil unless the event ended a drag.
func (w *Widget) Pointer(ev PointerEvent) (*Drop, bool) {
	if w.disabled {
		w.engine.Cancel()
		return nil, false
	}
	drop, ok := w.engine.Handle(ev)
	if !ok {
		return nil, false
	}
	return &drop, w.Drop(drop)
}

// RegisterZones replaces the hit-test zones of one list.
func (w *Widget) RegisterZones(side Side, zones []Zone) {
	w.engine.Zones().Replace(side, zones...)
}

// LayoutZones computes the zones of the visible rows of side from a layout.
func (w *Widget) LayoutZones(side Side, l Layout) {
	w.RegisterZones(side, l.Zones(side, w.Visible(side)))
}

// BeginRefresh issues the ticket for a candidate refresh.
func (w *Widget) BeginRefresh() Ticket {
	return w.store.Begin()
}

// ApplyRefresh installs the refreshed candidates unless a newer refresh was
// started in the meantime.
func (w *Widget) ApplyRefresh(t Ticket, candidates []Candidate) bool {
	if !w.store.Apply(t, candidates) {
		return false
	}
	w.repartition()
	return true
}

func (w *Widget) emit(direction Direction, moved []string) {
	if w.opts.OnChange == nil || len(moved) == 0 {
		return
	}
	w.opts.OnChange(w.TargetKeys(), direction, moved)
}

// Render renders one list through the configured renderer.
func (w *Widget) Render(side Side) templ.Component {
	view := w.View(side)
	return w.opts.Renderer(ListRenderContext{
		Side:         side,
		Items:        view.Items,
		SelectedKeys: view.Selected,
		Disabled:     view.Disabled,
		Placeholder:  view.Placeholder,
		Page:         view.Page,
		Query:        view.Query,
		LabelField:   w.opts.LabelField,
		OnItemSelectAll: func(keys []string, selected bool) {
			for _, key := range keys {
				w.ToggleSelection(side, key, selected)
			}
		},
		OnItemSelect: func(key string, selected bool) {
			w.ToggleSelection(side, key, selected)
		},
	})
}
