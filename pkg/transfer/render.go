package transfer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ListRenderContext is handed to a ListRenderer for one list.
type ListRenderContext struct {
	Side         Side
	Items        []Candidate
	SelectedKeys []string
	Disabled     bool
	Placeholder  bool
	Page         Page
	Query        string
	LabelField   string

	OnItemSelectAll func(keys []string, selected bool)
	OnItemSelect    func(key string, selected bool)
}

func (c ListRenderContext) IsSelected(key string) bool {
	for _, k := range c.SelectedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Label returns the configured label field, falling back to the id.
func (c ListRenderContext) Label(item Candidate) string {
	if c.LabelField != "" {
		if v := item.Field(c.LabelField); v != "" {
			return v
		}
	}
	return item.ID
}

type ListRenderer func(ctx ListRenderContext) templ.Component

// DefaultListRenderer renders a list as a <ul> of draggable rows. An empty
// list renders a single placeholder row that serves as drop target.
func DefaultListRenderer(lc ListRenderContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div class="transfer-list" data-side="%s" data-page="%d" data-pages="%d"`,
			templ.EscapeString(string(lc.Side)), lc.Page.Number, lc.Page.Pages)
		if lc.Disabled {
			b.WriteString(` aria-disabled="true"`)
		}
		b.WriteString(`><ul>`)
		if lc.Placeholder {
			b.WriteString(`<li class="transfer-placeholder" data-placeholder="true"></li>`)
		}
		for _, item := range lc.Items {
			id := templ.EscapeString(item.ID)
			fmt.Fprintf(&b, `<li class="transfer-row" data-id="%s" draggable="%t">`, id, !lc.Disabled)
			fmt.Fprintf(&b, `<input type="checkbox" data-role="select" value="%s"`, id)
			if lc.IsSelected(item.ID) {
				b.WriteString(` checked`)
			}
			if lc.Disabled {
				b.WriteString(` disabled`)
			}
			fmt.Fprintf(&b, `><span class="transfer-label">%s</span></li>`, templ.EscapeString(lc.Label(item)))
		}
		b.WriteString(`</ul></div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
