package composables

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type listQuery struct {
	Query string `form:"q"`
	Page  int    `form:"page"`
}

func TestUseQuery_DecodesTaggedFields(t *testing.T) {
	r := httptest.NewRequest("GET", "/partners/api?q=acme&page=3", nil)
	q, err := UseQuery(&listQuery{}, r)
	require.NoError(t, err)
	require.Equal(t, "acme", q.Query)
	require.Equal(t, 3, q.Page)
}

func TestGetLastQueryParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?side=available&side=assigned", nil)
	require.Equal(t, "assigned", GetLastQueryParam(r, "side"))
	require.Equal(t, "", GetLastQueryParam(r, "missing"))
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=4&bad=x", nil)
	require.Equal(t, 4, QueryInt(r, "page", 1))
	require.Equal(t, 1, QueryInt(r, "bad", 1))
	require.Equal(t, 7, QueryInt(r, "none", 7))
}

func TestUseLogger(t *testing.T) {
	ctx := context.Background()
	_, err := TryUseLogger(ctx)
	require.ErrorIs(t, err, ErrNoLogger)
	require.Panics(t, func() { UseLogger(ctx) })

	entry := logrus.NewEntry(logrus.New())
	ctx = WithLogger(ctx, entry)
	require.Same(t, entry, UseLogger(ctx))
}

func TestUsePool_Missing(t *testing.T) {
	_, err := UsePool(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
	_, err = UseTx(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
}

func TestUsePaginated(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=0&limit=500", nil)
	p := UsePaginated(r, 25, 100)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 100, p.PerPage)

	r = httptest.NewRequest("GET", "/x?page=3", nil)
	p = UsePaginated(r, 25, 100)
	require.Equal(t, PaginationParams{Page: 3, PerPage: 25}, p)
}
