package transfer

type ZoneKind string

const (
	ZoneRow         ZoneKind = "row"
	ZonePlaceholder ZoneKind = "placeholder"
	ZoneCheckbox    ZoneKind = "checkbox"
)

func (k ZoneKind) Valid() bool {
	switch k {
	case ZoneRow, ZonePlaceholder, ZoneCheckbox:
		return true
	}
	return false
}

func (k ZoneKind) priority() int {
	switch k {
	case ZoneCheckbox:
		return 3
	case ZoneRow:
		return 2
	case ZonePlaceholder:
		return 1
	}
	return 0
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Zone is a hit-test target. Placeholder zones carry no ID.
type Zone struct {
	Kind ZoneKind `json:"kind"`
	Side Side     `json:"side"`
	ID   string   `json:"id,omitempty"`
	Rect Rect     `json:"rect"`
}

// ZoneTable resolves pointer coordinates to the registered zones. When zones
// overlap, checkboxes win over rows and rows over placeholders; among equal
// kinds the zone registered last wins.
type ZoneTable struct {
	zones []Zone
}

func NewZoneTable(zones ...Zone) *ZoneTable {
	t := &ZoneTable{}
	t.Register(zones...)
	return t
}

func (t *ZoneTable) Register(zones ...Zone) {
	for _, z := range zones {
		if !z.Kind.Valid() || !z.Side.Valid() {
			continue
		}
		if z.Kind != ZonePlaceholder && z.ID == "" {
			continue
		}
		t.zones = append(t.zones, z)
	}
}

// Replace drops all zones of side and registers zones in their place.
func (t *ZoneTable) Replace(side Side, zones ...Zone) {
	kept := t.zones[:0]
	for _, z := range t.zones {
		if z.Side != side {
			kept = append(kept, z)
		}
	}
	t.zones = kept
	for _, z := range zones {
		if z.Side == side {
			t.Register(z)
		}
	}
}

func (t *ZoneTable) Reset() {
	t.zones = nil
}

func (t *ZoneTable) Zones() []Zone {
	out := make([]Zone, len(t.zones))
	copy(out, t.zones)
	return out
}

func (t *ZoneTable) HitTest(p Point) (Zone, bool) {
	var (
		best  Zone
		found bool
	)
	for i := len(t.zones) - 1; i >= 0; i-- {
		z := t.zones[i]
		if !z.Rect.Contains(p) {
			continue
		}
		if !found || z.Kind.priority() > best.Kind.priority() {
			best = z
			found = true
		}
	}
	return best, found
}

// Layout computes zones for a vertically stacked list of fixed-height rows.
// Every row gets a checkbox zone of CheckboxWidth at its left edge.
type Layout struct {
	Origin        Point   `json:"origin"`
	Width         float64 `json:"width"`
	RowHeight     float64 `json:"rowHeight"`
	CheckboxWidth float64 `json:"checkboxWidth"`
}

func (l Layout) Zones(side Side, visible []string) []Zone {
	if len(visible) == 0 {
		return []Zone{{
			Kind: ZonePlaceholder,
			Side: side,
			Rect: Rect{X: l.Origin.X, Y: l.Origin.Y, Width: l.Width, Height: l.RowHeight},
		}}
	}
	zones := make([]Zone, 0, len(visible)*2)
	for i, id := range visible {
		y := l.Origin.Y + float64(i)*l.RowHeight
		zones = append(zones, Zone{
			Kind: ZoneRow,
			Side: side,
			ID:   id,
			Rect: Rect{X: l.Origin.X, Y: y, Width: l.Width, Height: l.RowHeight},
		})
		if l.CheckboxWidth > 0 {
			zones = append(zones, Zone{
				Kind: ZoneCheckbox,
				Side: side,
				ID:   id,
				Rect: Rect{X: l.Origin.X, Y: y, Width: l.CheckboxWidth, Height: l.RowHeight},
			})
		}
	}
	return zones
}
