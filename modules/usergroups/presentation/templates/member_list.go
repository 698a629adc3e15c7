package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/entities/user"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/transfer"
)

var _ transfer.ListRenderer = MemberList

// MemberList renders one side of the group assignment dialog. Rows show the
// full name with username and department underneath.
func MemberList(lc transfer.ListRenderContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		title := intl.T(ctx, "UserGroups.Transfer.Available", "Available users", nil)
		if lc.Side == transfer.SideAssigned {
			title = intl.T(ctx, "UserGroups.Transfer.Assigned", "Group members", nil)
		}
		fmt.Fprintf(&b, `<section class="member-list" data-side="%s"`, templ.EscapeString(string(lc.Side)))
		if lc.Disabled {
			b.WriteString(` aria-disabled="true"`)
		}
		fmt.Fprintf(&b, `><header><label><input type="checkbox" data-role="select-all"%s>%s</label>`,
			disabledAttr(lc.Disabled), templ.EscapeString(title))
		fmt.Fprintf(&b, `<span class="member-list__count">%d/%d</span></header>`, len(lc.SelectedKeys), lc.Page.Total)
		fmt.Fprintf(&b, `<input type="search" name="query" value="%s"%s>`, templ.EscapeString(lc.Query), disabledAttr(lc.Disabled))

		b.WriteString(`<ul>`)
		if lc.Placeholder {
			fmt.Fprintf(&b, `<li class="member-list__empty" data-placeholder="true">%s</li>`,
				templ.EscapeString(intl.T(ctx, "UserGroups.Transfer.Empty", "Drop users here", nil)))
		}
		for _, item := range lc.Items {
			id := templ.EscapeString(item.ID)
			fmt.Fprintf(&b, `<li class="member-row" data-id="%s" draggable="%t">`, id, !lc.Disabled)
			fmt.Fprintf(&b, `<input type="checkbox" data-role="select" value="%s"`, id)
			if lc.IsSelected(item.ID) {
				b.WriteString(` checked`)
			}
			b.WriteString(disabledAttr(lc.Disabled))
			fmt.Fprintf(&b, `><span class="member-row__name">%s</span>`, templ.EscapeString(lc.Label(item)))
			fmt.Fprintf(&b, `<small class="member-row__meta">%s`, templ.EscapeString(item.Field(user.FieldUsername)))
			if dept := item.Field(user.FieldDepartment); dept != "" {
				fmt.Fprintf(&b, ` · %s`, templ.EscapeString(dept))
			}
			b.WriteString(`</small></li>`)
		}
		b.WriteString(`</ul>`)
		if lc.Page.Pages > 1 {
			fmt.Fprintf(&b, `<nav class="member-list__pager" data-page="%d" data-pages="%d"></nav>`, lc.Page.Number, lc.Page.Pages)
		}
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func disabledAttr(disabled bool) string {
	if disabled {
		return ` disabled`
	}
	return ""
}
