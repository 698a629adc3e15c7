package transfer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

type changeCall struct {
	targetKeys []string
	direction  Direction
	moved      []string
}

type changeRecorder struct {
	calls []changeCall
}

func (r *changeRecorder) onChange(targetKeys []string, direction Direction, moved []string) {
	r.calls = append(r.calls, changeCall{targetKeys: targetKeys, direction: direction, moved: moved})
}

var (
	leftLayout  = Layout{Origin: Point{X: 0, Y: 0}, Width: 200, RowHeight: 20, CheckboxWidth: 20}
	rightLayout = Layout{Origin: Point{X: 300, Y: 0}, Width: 200, RowHeight: 20, CheckboxWidth: 20}
)

func newTestWidget(t *testing.T, ids []string, members []string) (*Widget, *changeRecorder) {
	t.Helper()
	rec := &changeRecorder{}
	w := NewWidget(candidates(ids...), members, Options{
		PageSize:   3,
		LabelField: "name",
		OnChange:   rec.onChange,
	})
	w.LayoutZones(SideAvailable, leftLayout)
	w.LayoutZones(SideAssigned, rightLayout)
	return w, rec
}

// drag presses the middle of row from and releases at to.
func drag(w *Widget, from, to Point) (*Drop, bool) {
	w.Pointer(PointerEvent{Type: PointerDown, Point: from})
	w.Pointer(PointerEvent{Type: PointerMove, Point: Point{X: from.X, Y: from.Y + 10}})
	w.Pointer(PointerEvent{Type: PointerMove, Point: to})
	return w.Pointer(PointerEvent{Type: PointerUp, Point: to})
}

func rowCenter(l Layout, index int) Point {
	return Point{X: l.Origin.X + l.Width/2, Y: l.Origin.Y + float64(index)*l.RowHeight + l.RowHeight/2}
}

func TestWidget_CrossListDropAssigns(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b", "c"}, []string{"c"})

	drop, changed := drag(w, rowCenter(leftLayout, 1), rowCenter(rightLayout, 0))

	require.NotNil(t, drop)
	require.True(t, changed)
	require.True(t, w.Membership().Has("b"))
	require.Equal(t, []string{"a"}, w.Order(SideAvailable))
	require.Equal(t, []string{"b", "c"}, w.Order(SideAssigned))
	require.Equal(t, StateIdle, w.Engine().State())

	require.Len(t, rec.calls, 1)
	require.Equal(t, DirectionRight, rec.calls[0].direction)
	require.Equal(t, []string{"b"}, rec.calls[0].moved)
	require.Equal(t, []string{"b", "c"}, rec.calls[0].targetKeys)
}

func TestWidget_CrossListDropUnassigns(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b"}, []string{"a", "b"})
	w.LayoutZones(SideAvailable, leftLayout)

	_, changed := drag(w, rowCenter(rightLayout, 0), rowCenter(leftLayout, 0))

	require.True(t, changed)
	require.False(t, w.Membership().Has("a"))
	require.Equal(t, []string{"a"}, w.Order(SideAvailable))
	require.Len(t, rec.calls, 1)
	require.Equal(t, DirectionLeft, rec.calls[0].direction)
}

func TestWidget_SameListReorderKeepsMembership(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b", "c"}, []string{"a", "b", "c"})
	before := w.Membership().IDs()

	_, changed := drag(w, rowCenter(rightLayout, 0), rowCenter(rightLayout, 2))

	require.True(t, changed)
	require.Equal(t, []string{"b", "c", "a"}, w.Order(SideAssigned))
	require.Equal(t, before, w.Membership().IDs())
	require.Empty(t, rec.calls)
	require.Equal(t, []string{"b", "c", "a"}, w.TargetKeys())
}

func TestWidget_DropOutsideIsNoop(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b"}, nil)

	drop, changed := drag(w, rowCenter(leftLayout, 0), Point{X: 1000, Y: 1000})

	require.NotNil(t, drop)
	require.Nil(t, drop.Over)
	require.False(t, changed)
	require.Equal(t, []string{"a", "b"}, w.Order(SideAvailable))
	require.Empty(t, rec.calls)
}

func TestWidget_StaleDropIsNoop(t *testing.T) {
	w, _ := newTestWidget(t, []string{"a", "b"}, nil)
	over := Zone{Kind: ZoneRow, Side: SideAvailable, ID: "b"}

	require.False(t, w.Drop(Drop{ActiveID: "gone", Source: SideAvailable, Over: &over}))
	require.False(t, w.Drop(Drop{ActiveID: "a", Source: SideAvailable, Over: nil}))
	require.Equal(t, []string{"a", "b"}, w.Order(SideAvailable))
}

func TestWidget_DropOnEmptyPlaceholder(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a"}, nil)

	zones := w.Engine().Zones().Zones()
	var placeholder *Zone
	for i := range zones {
		if zones[i].Kind == ZonePlaceholder {
			placeholder = &zones[i]
		}
	}
	require.NotNil(t, placeholder)
	require.Equal(t, SideAssigned, placeholder.Side)

	_, changed := drag(w, rowCenter(leftLayout, 0), rowCenter(rightLayout, 0))
	require.True(t, changed)
	require.Equal(t, []string{"a"}, w.TargetKeys())
	require.Len(t, rec.calls, 1)
}

func TestWidget_FilteredOutListRendersItsPlaceholder(t *testing.T) {
	w, _ := newTestWidget(t, []string{"a", "b"}, []string{"b"})

	require.True(t, w.SetFilter(SideAssigned, "zzz"))
	w.LayoutZones(SideAssigned, rightLayout)

	view := w.View(SideAssigned)
	require.Empty(t, view.Items)
	require.Equal(t, 1, view.Count)
	require.True(t, view.Placeholder)

	zone, ok := w.Engine().Zones().HitTest(rowCenter(rightLayout, 0))
	require.True(t, ok)
	require.Equal(t, ZonePlaceholder, zone.Kind)

	var buf bytes.Buffer
	require.NoError(t, w.Render(SideAssigned).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("li.transfer-placeholder").Length())

	require.False(t, w.View(SideAvailable).Placeholder)
}

func TestWidget_CheckboxPressNeverDrags(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b"}, nil)

	checkbox := Point{X: 5, Y: 5}
	drop, changed := drag(w, checkbox, rowCenter(rightLayout, 0))

	require.Nil(t, drop)
	require.False(t, changed)
	require.Equal(t, StateIdle, w.Engine().State())
	require.Empty(t, rec.calls)
}

func TestWidget_MoveAllAndClearAll(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b", "c", "d", "e"}, []string{"ghost"})
	w.SetFilter(SideAvailable, "User a")
	w.SetPage(SideAssigned, 2)

	moved := w.MoveAll()
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, moved, "move all ignores the filter")
	require.Empty(t, w.Order(SideAvailable))
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, w.Order(SideAssigned))
	require.Equal(t, 1, w.View(SideAssigned).Page.Number)
	require.Equal(t, []string{"a", "b", "c", "d", "e", "ghost"}, w.TargetKeys())

	w.SetPage(SideAssigned, 2)
	require.Equal(t, 2, w.View(SideAssigned).Page.Number)

	cleared := w.ClearAll()
	require.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "ghost"}, cleared)
	require.Zero(t, w.Membership().Len())
	require.Empty(t, w.Order(SideAssigned))
	require.Equal(t, 1, w.View(SideAssigned).Page.Number)
	require.Equal(t, 1, w.View(SideAvailable).Page.Number)

	require.Len(t, rec.calls, 2)
	require.Equal(t, DirectionRight, rec.calls[0].direction)
	require.Equal(t, DirectionLeft, rec.calls[1].direction)
	require.Empty(t, rec.calls[1].targetKeys)
}

func TestWidget_SelectionAndMoveSelected(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b", "c", "d"}, nil)

	require.True(t, w.SelectAll(SideAvailable))
	require.Equal(t, []string{"a", "b", "c"}, w.View(SideAvailable).Selected, "select all covers the visible page only")

	require.True(t, w.InvertSelection(SideAvailable))
	require.Empty(t, w.View(SideAvailable).Selected)

	require.True(t, w.ToggleSelection(SideAvailable, "b", true))
	require.False(t, w.ToggleSelection(SideAvailable, "zz", true))
	w.SetPage(SideAvailable, 2)
	require.True(t, w.ToggleSelection(SideAvailable, "d", true))

	moved := w.MoveSelected(SideAvailable)
	require.Equal(t, []string{"b", "d"}, moved)
	require.Equal(t, []string{"b", "d"}, w.Order(SideAssigned))
	require.Empty(t, w.View(SideAvailable).Selected)
	require.Equal(t, 1, w.View(SideAvailable).Page.Number)
	require.Len(t, rec.calls, 1)
	require.Equal(t, []string{"b", "d"}, rec.calls[0].moved)

	require.True(t, w.SelectNone(SideAssigned))
	require.Empty(t, w.MoveSelected(SideAssigned))
	require.Len(t, rec.calls, 1, "nothing moved, nothing emitted")
}

func TestWidget_FilterResetsPageAndKeepsMembership(t *testing.T) {
	w, _ := newTestWidget(t, []string{"a", "b", "c", "d", "e"}, []string{"e"})
	w.SetPage(SideAvailable, 2)

	w.SetFilter(SideAvailable, "user B")

	view := w.View(SideAvailable)
	require.Equal(t, 1, view.Page.Number)
	require.Equal(t, []string{"b"}, view.Page.Keys)
	require.Equal(t, 4, view.Count)
	require.Equal(t, []string{"e"}, w.Membership().IDs())
}

func TestWidget_RefreshHonoursSequence(t *testing.T) {
	w, _ := newTestWidget(t, []string{"a", "b"}, []string{"b", "x"})

	stale := w.BeginRefresh()
	latest := w.BeginRefresh()

	require.True(t, w.ApplyRefresh(latest, candidates("x", "y")))
	require.False(t, w.ApplyRefresh(stale, candidates("q")))

	require.Equal(t, []string{"y"}, w.Order(SideAvailable))
	require.Equal(t, []string{"x"}, w.Order(SideAssigned))
	require.Equal(t, []string{"x", "b"}, w.TargetKeys())
}

func TestWidget_DisabledIgnoresGestures(t *testing.T) {
	w, rec := newTestWidget(t, []string{"a", "b"}, nil)
	w.SetDisabled(true)

	_, changed := drag(w, rowCenter(leftLayout, 0), rowCenter(rightLayout, 0))
	require.False(t, changed)
	require.Nil(t, w.MoveAll())
	require.False(t, w.SelectAll(SideAvailable))
	require.True(t, w.View(SideAvailable).Disabled)
	require.Empty(t, rec.calls)
}

func renderHTML(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc
}

func TestWidget_RenderDefaultList(t *testing.T) {
	w := NewWidget([]Candidate{
		{ID: "1", DisplayFields: map[string]string{"name": "<Alice>"}},
		{ID: "2", DisplayFields: map[string]string{"name": "Bob"}},
	}, nil, Options{LabelField: "name"})
	w.ToggleSelection(SideAvailable, "2", true)

	doc := renderHTML(t, w.Render(SideAvailable))
	rows := doc.Find("li.transfer-row")
	require.Equal(t, 2, rows.Length())
	require.Equal(t, "<Alice>", rows.First().Find(".transfer-label").Text())
	_, checked := rows.Eq(1).Find("input[data-role=select]").Attr("checked")
	require.True(t, checked)

	empty := renderHTML(t, w.Render(SideAssigned))
	require.Equal(t, 1, empty.Find("li.transfer-placeholder").Length())
	require.Zero(t, empty.Find("li.transfer-row").Length())
}

func TestWidget_CustomRendererReceivesHandlers(t *testing.T) {
	var got ListRenderContext
	w := NewWidget(candidates("a", "b"), nil, Options{
		Renderer: func(lc ListRenderContext) templ.Component {
			got = lc
			return templ.NopComponent
		},
	})

	_ = w.Render(SideAvailable)
	require.Len(t, got.Items, 2)
	require.False(t, got.Disabled)

	got.OnItemSelectAll([]string{"a", "b"}, true)
	require.Equal(t, []string{"a", "b"}, w.View(SideAvailable).Selected)
	got.OnItemSelect("a", false)
	require.Equal(t, []string{"b"}, w.View(SideAvailable).Selected)
}
