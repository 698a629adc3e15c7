package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/refconsole/modules/tasktypes/domain/aggregates/tasktype"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

func newRepo(t *testing.T, h http.HandlerFunc) tasktype.Repository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := refapi.NewClient(refapi.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return NewTaskTypeRepository(client, "api/task-types")
}

func TestTaskTypeRepository_SearchSendsFilters(t *testing.T) {
	var body map[string]any
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/task-types/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"status":200,"success":true,"data":{"items":[{"id":"1","code":"insp","name":"Inspection","status":"enabled","version":2}],"total":1}}`))
	})

	items, total, err := repo.Search(context.Background(), &tasktype.FindParams{Query: "ins", Status: tasktype.StatusEnabled, Page: 2, PerPage: 5})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.Equal(t, "INSP", items[0].Code())
	require.Equal(t, int64(2), items[0].Version())

	require.Equal(t, "ins", body["q"])
	require.Equal(t, "enabled", body["status"])
	require.InDelta(t, 2, body["page"], 0)
	require.InDelta(t, 5, body["perPage"], 0)
}

func TestTaskTypeRepository_SaveRejected(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		_, _ = w.Write([]byte(`{"status":409,"success":false,"message":"stale"}`))
	})

	existing := tasktype.Hydrate("1", tasktype.Fields{Code: "INSP", Name: "Inspection", Status: tasktype.StatusEnabled}, 1, time.Time{}, time.Time{})
	_, err := repo.Save(context.Background(), existing)
	require.ErrorIs(t, err, refapi.ErrStaleVersion)
}

func TestTaskTypeRepository_DeleteURL(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":200,"success":true,"data":{"hasError":false,"payload":null}}`))
	})
	require.Equal(t, "/api/task-types/delete-multiple", repo.DeleteURL())

	res, err := repo.CheckDeleteMultiple(context.Background(), []bulkdelete.Candidate{{ID: "1", Version: 1}})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, res.Report.Clean())
}
