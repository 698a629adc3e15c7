package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/refconsole/modules/usergroups"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

type upstream struct {
	mu       sync.Mutex
	bodies   map[string][]byte
	handlers map[string]func(body []byte) any
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path
	u.mu.Lock()
	u.bodies[key] = body
	h := u.handlers[key]
	u.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if h == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": 404, "success": false, "message": "not found"})
		return
	}
	_ = json.NewEncoder(w).Encode(h(body))
}

func (u *upstream) body(key string) []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.bodies[key]
}

func ok(data any) map[string]any {
	return map[string]any{"status": 200, "success": true, "data": data}
}

var users = []map[string]any{
	{"id": "u1", "username": "alice", "fullName": "Alice Liddell", "department": "ops"},
	{"id": "u2", "username": "bob", "fullName": "Bob Builder", "department": "ops"},
	{"id": "u3", "username": "carol", "fullName": "Carol Danvers", "department": "sales"},
}

var ops = map[string]any{
	"id": "g1", "code": "OPS", "name": "Operations", "memberIds": []string{"u1"}, "version": 4,
}

func defaultHandlers() map[string]func([]byte) any {
	return map[string]func([]byte) any{
		"GET /api/groups/g1": func([]byte) any { return ok(ops) },
		"POST /api/groups/search": func([]byte) any {
			return ok(map[string]any{"items": []any{ops}, "total": 1})
		},
		"POST /api/users/search": func([]byte) any {
			return ok(map[string]any{"items": users, "total": len(users)})
		},
		"PUT /api/groups/g1": func(body []byte) any {
			var req map[string]any
			_ = json.Unmarshal(body, &req)
			req["id"] = "g1"
			req["version"] = 5
			return ok(req)
		},
	}
}

func setup(t *testing.T, handlers map[string]func(body []byte) any) (*mux.Router, *upstream) {
	t.Helper()
	up := &upstream{handlers: handlers, bodies: map[string][]byte{}}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client, err := refapi.NewClient(refapi.Options{BaseURL: srv.URL})
	require.NoError(t, err)

	app := application.New(&application.ApplicationOptions{})
	app.RegisterLocaleFiles(&intl.LocaleFiles)
	require.NoError(t, usergroups.NewModule(&usergroups.ModuleOptions{
		Client:      client,
		GroupsPath:  "/api/groups",
		UsersPath:   "/api/users",
		PageSize:    10,
		MaxPageSize: 50,
	}).Register(app))

	r := mux.NewRouter()
	for _, c := range app.Controllers() {
		c.Register(r)
	}
	return r, up
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type sessionBody struct {
	ID    string `json:"id"`
	Group *struct {
		ID        string   `json:"id"`
		MemberIDs []string `json:"memberIds"`
		Version   int64    `json:"version"`
	} `json:"group"`
	Available struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Count int `json:"count"`
	} `json:"available"`
	Assigned struct {
		Count int `json:"count"`
	} `json:"assigned"`
	TargetKeys []string `json:"targetKeys"`
	Disabled   bool     `json:"disabled"`
	Applied    bool     `json:"applied"`
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) sessionBody {
	t.Helper()
	var s sessionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s), w.Body.String())
	return s
}

func openSession(t *testing.T, r http.Handler) sessionBody {
	t.Helper()
	w := do(r, http.MethodPost, "/usergroups/api/membership-sessions", map[string]any{"groupId": "g1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSession(t, w)
}

func TestUserGroupAPI_ListGroups(t *testing.T) {
	r, _ := setup(t, defaultHandlers())

	w := do(r, http.MethodGet, "/usergroups/api/groups?q=op", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []struct {
			Code string `json:"code"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	require.Equal(t, "OPS", page.Items[0].Code)
}

func TestUserGroupAPI_OpenPartitionsCandidates(t *testing.T) {
	r, _ := setup(t, defaultHandlers())

	s := openSession(t, r)
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Group)
	require.Equal(t, "g1", s.Group.ID)
	require.Equal(t, []string{"u1"}, s.TargetKeys)
	require.Equal(t, 2, s.Available.Count)
	require.Equal(t, 1, s.Assigned.Count)
	require.Len(t, s.Available.Items, 2)
}

func TestUserGroupAPI_OpenWithoutBody(t *testing.T) {
	r, _ := setup(t, defaultHandlers())

	w := do(r, http.MethodPost, "/usergroups/api/membership-sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	s := decodeSession(t, w)
	require.Nil(t, s.Group)
	require.Empty(t, s.TargetKeys)
	require.Equal(t, 3, s.Available.Count)
}

func TestUserGroupAPI_RenderList(t *testing.T) {
	r, _ := setup(t, defaultHandlers())
	s := openSession(t, r)

	w := do(r, http.MethodGet, "/usergroups/api/membership-sessions/"+s.ID+"/lists/assigned", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("li.member-row").Length())
	require.Equal(t, "Alice Liddell", strings.TrimSpace(doc.Find(".member-row__name").First().Text()))

	w = do(r, http.MethodGet, "/usergroups/api/membership-sessions/"+s.ID+"/lists/sideways", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserGroupAPI_TransferAndSave(t *testing.T) {
	r, up := setup(t, defaultHandlers())
	s := openSession(t, r)
	base := "/usergroups/api/membership-sessions/" + s.ID

	w := do(r, http.MethodPost, base+"/transfer", map[string]any{"op": "move-all"})
	require.Equal(t, http.StatusOK, w.Code)
	moved := decodeSession(t, w)
	require.True(t, moved.Applied)
	require.Equal(t, []string{"u1", "u2", "u3"}, moved.TargetKeys)

	w = do(r, http.MethodPost, base+"/transfer", map[string]any{"op": "move-all"})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decodeSession(t, w).Applied)

	w = do(r, http.MethodPost, base+"/save", map[string]any{"code": "OPS", "name": "Operations"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decodeSession(t, w)
	require.False(t, saved.Disabled)
	require.Equal(t, int64(5), saved.Group.Version)

	var sent struct {
		MemberIDs []string `json:"memberIds"`
		Version   int64    `json:"version"`
	}
	require.NoError(t, json.Unmarshal(up.body("PUT /api/groups/g1"), &sent))
	require.Equal(t, []string{"u1", "u2", "u3"}, sent.MemberIDs)
	require.Equal(t, int64(4), sent.Version)
}

func TestUserGroupAPI_SaveValidation(t *testing.T) {
	r, _ := setup(t, defaultHandlers())
	s := openSession(t, r)

	w := do(r, http.MethodPost, "/usergroups/api/membership-sessions/"+s.ID+"/save", map[string]any{"name": "Operations"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var apiErr httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, httpapi.CodeValidationFailed, apiErr.Code)
	require.Contains(t, apiErr.Fields, "Code")
}

func TestUserGroupAPI_SaveStaleVersion(t *testing.T) {
	handlers := defaultHandlers()
	handlers["PUT /api/groups/g1"] = func([]byte) any {
		return map[string]any{"status": 409, "success": false, "message": "version mismatch"}
	}
	r, _ := setup(t, handlers)
	s := openSession(t, r)

	w := do(r, http.MethodPost, "/usergroups/api/membership-sessions/"+s.ID+"/save", map[string]any{"code": "OPS", "name": "Ops"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodGet, "/usergroups/api/membership-sessions/"+s.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	after := decodeSession(t, w)
	require.False(t, after.Disabled)
	require.Equal(t, int64(4), after.Group.Version)
}

func TestUserGroupAPI_SelectRejectsUnknownSide(t *testing.T) {
	r, _ := setup(t, defaultHandlers())
	s := openSession(t, r)

	w := do(r, http.MethodPost, "/usergroups/api/membership-sessions/"+s.ID+"/select", map[string]any{"side": "left", "op": "all"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, "INVALID_SIDE", apiErr.Code)
	require.Equal(t, "Unknown list side.", apiErr.Message)
}

func TestUserGroupAPI_PointerRejectsUnknownType(t *testing.T) {
	r, _ := setup(t, defaultHandlers())
	s := openSession(t, r)

	w := do(r, http.MethodPost, "/usergroups/api/membership-sessions/"+s.ID+"/pointer", map[string]any{"type": "hover", "x": 1, "y": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserGroupAPI_ClosedSessionIsGone(t *testing.T) {
	r, _ := setup(t, defaultHandlers())
	s := openSession(t, r)

	w := do(r, http.MethodDelete, "/usergroups/api/membership-sessions/"+s.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/usergroups/api/membership-sessions/"+s.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/usergroups/api/membership-sessions/"+s.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserGroupAPI_DeleteGroupsRejectsMissingID(t *testing.T) {
	r, up := setup(t, defaultHandlers())

	w := do(r, http.MethodPost, "/usergroups/api/groups:delete-multiple", map[string]any{
		"items": []map[string]any{{"id": "g1", "version": 4}, {"code": "OPS", "version": 4}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, httpapi.CodeInvalidRequest, apiErr.Code)
	require.Contains(t, apiErr.Fields, "ID")
	require.Nil(t, up.body("POST /api/groups/check-delete-multiple"))
}
