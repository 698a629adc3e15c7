package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/entities/user"
	"github.com/iota-uz/refconsole/pkg/transfer"
)

func render(t *testing.T, lc transfer.ListRenderContext) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, MemberList(lc).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestMemberList_Rows(t *testing.T) {
	doc := render(t, transfer.ListRenderContext{
		Side: transfer.SideAssigned,
		Items: []transfer.Candidate{
			user.New("u1", "alice", "Alice <Admin>", "a@example.com", "Ops").Candidate(),
			user.New("u2", "bob", "Bob", "b@example.com", "").Candidate(),
		},
		SelectedKeys: []string{"u2"},
		LabelField:   user.FieldFullName,
		Page:         transfer.Page{Number: 1, Pages: 1, Total: 2},
	})

	rows := doc.Find("li.member-row")
	require.Equal(t, 2, rows.Length())
	require.Equal(t, "Alice <Admin>", rows.First().Find(".member-row__name").Text())
	require.Equal(t, "alice · Ops", rows.First().Find(".member-row__meta").Text())
	_, checked := rows.Eq(1).Find(`input[data-role="select"]`).Attr("checked")
	require.True(t, checked)
	require.Equal(t, "1/2", doc.Find(".member-list__count").Text())
	require.Contains(t, doc.Find("header").Text(), "Group members")
	require.Zero(t, doc.Find(".member-list__pager").Length())
}

func TestMemberList_PlaceholderAndDisabled(t *testing.T) {
	doc := render(t, transfer.ListRenderContext{
		Side:        transfer.SideAvailable,
		Placeholder: true,
		Disabled:    true,
		Page:        transfer.Page{Number: 1, Pages: 1},
	})

	section := doc.Find("section.member-list")
	require.Equal(t, "available", section.AttrOr("data-side", ""))
	require.Equal(t, "true", section.AttrOr("aria-disabled", ""))
	require.Equal(t, "Drop users here", doc.Find(`li[data-placeholder="true"]`).Text())
	_, disabled := doc.Find(`input[data-role="select-all"]`).Attr("disabled")
	require.True(t, disabled)
}
