package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/refconsole/modules/tasktypes"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/excel"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

func newRouter(t *testing.T, upstream http.HandlerFunc) *mux.Router {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	client, err := refapi.NewClient(refapi.Options{BaseURL: srv.URL})
	require.NoError(t, err)

	app := application.New(&application.ApplicationOptions{})
	app.RegisterLocaleFiles(&intl.LocaleFiles)
	require.NoError(t, tasktypes.NewModule(&tasktypes.ModuleOptions{
		Client: client,
		Path:   "/api/task-types",
	}).Register(app))

	r := mux.NewRouter()
	for _, c := range app.Controllers() {
		c.Register(r)
	}
	return r
}

const searchResponse = `{"status":200,"success":true,"data":{"items":[
	{"id":"1","code":"INSP","name":"Inspection","status":"enabled","version":1},
	{"id":"2","code":"REP","name":"Repair","description":"On site","status":"disabled","version":4}
],"total":2}}`

func TestTaskTypeAPI_Export(t *testing.T) {
	r := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(searchResponse))
	})

	req := httptest.NewRequest(http.MethodGet, "/task-types/api/task-types:export?status=enabled", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, excel.ContentType, w.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="task-types-`))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Task types")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "REP", rows[2][0])
}

func TestTaskTypeAPI_DeleteCheckFailed(t *testing.T) {
	var commits int
	r := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/check-delete-multiple") {
			_, _ = w.Write([]byte(`{"status":500,"success":false,"message":"boom"}`))
			return
		}
		commits++
		_, _ = w.Write([]byte(`{"status":200,"success":true}`))
	})

	body, _ := json.Marshal(map[string]any{"items": []bulkdelete.Candidate{{ID: "1", Version: 1}}})
	req := httptest.NewRequest(http.MethodPost, "/task-types/api/task-types:delete-multiple", bytes.NewReader(body))
	req.Header.Set("Accept-Language", "zh")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp bulkdelete.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, bulkdelete.OutcomeCheckFailed, resp.Outcome)
	require.Len(t, resp.Notifications, 1)
	require.Equal(t, bulkdelete.LevelError, resp.Notifications[0].Level)
	require.Equal(t, "无法校验所选记录，未删除任何内容。", resp.Notifications[0].Message)
	require.False(t, resp.SelectionCleared)
	require.Zero(t, commits)
}

func TestTaskTypeAPI_DeleteRejectsMissingID(t *testing.T) {
	var calls int
	r := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"status":200,"success":true}`))
	})

	body, _ := json.Marshal(map[string]any{"items": []map[string]any{{"code": "INSP", "version": 1}}})
	req := httptest.NewRequest(http.MethodPost, "/task-types/api/task-types:delete-multiple", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, httpapi.CodeInvalidRequest, apiErr.Code)
	require.Contains(t, apiErr.Fields, "ID")
	require.Zero(t, calls)
}

func TestTaskTypeAPI_CreateRejectsBadCode(t *testing.T) {
	r := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Errorf("unexpected upstream call %s", req.URL.Path)
	})

	body := `{"code":"has space","name":"Inspection"}`
	req := httptest.NewRequest(http.MethodPost, "/task-types/api/task-types", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), `"Code"`)
}
