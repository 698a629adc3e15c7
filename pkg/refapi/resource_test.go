package refapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/composables"
)

type partner struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int64  `json:"version"`
}

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
	Header http.Header
}

func newTestServer(t *testing.T, handler func(r recordedRequest) (int, string)) (*Client, *[]recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		mu.Lock()
		seen = append(seen, rec)
		mu.Unlock()
		status, body := handler(rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		BaseURL:         srv.URL + "/api",
		Authorization:   "Bearer test",
		RequestIDHeader: "X-Request-ID",
	})
	require.NoError(t, err)
	return client, &seen
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "not a url"})
	require.Error(t, err)
}

func TestClient_ForwardsInboundRequestID(t *testing.T) {
	client, seen := newTestServer(t, func(recordedRequest) (int, string) {
		return http.StatusOK, `{"status":200,"success":true,"data":{"id":"1","name":"Acme","version":1}}`
	})
	res := NewResource[partner](client, "partners")

	logger := logrus.NewEntry(logrus.New()).WithField("request-id", "req-9")
	_, err := res.Get(composables.WithLogger(t.Context(), logger), "1")
	require.NoError(t, err)
	_, err = res.Get(t.Context(), "1")
	require.NoError(t, err)

	require.Len(t, *seen, 2)
	require.Equal(t, "req-9", (*seen)[0].Header.Get("X-Request-ID"))
	fresh := (*seen)[1].Header.Get("X-Request-ID")
	require.NotEmpty(t, fresh)
	require.NotEqual(t, "req-9", fresh)
}

func TestResource_Search(t *testing.T) {
	client, seen := newTestServer(t, func(r recordedRequest) (int, string) {
		return http.StatusOK, `{"status":200,"success":true,"data":{"items":[{"id":"1","name":"Acme","version":2}],"total":41}}`
	})
	partners := NewResource[partner](client, "partners")

	page, err := partners.Search(t.Context(), SearchParams{
		Query:   " acme ",
		Filters: map[string]string{"status": "active", "empty": ""},
		Page:    2,
		PerPage: 20,
	})
	require.NoError(t, err)
	require.Equal(t, int64(41), page.Total)
	require.Equal(t, []partner{{ID: "1", Name: "Acme", Version: 2}}, page.Items)

	req := (*seen)[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/api/partners/search", req.Path)
	require.Equal(t, "acme", req.Body["q"])
	require.Equal(t, "active", req.Body["status"])
	require.NotContains(t, req.Body, "empty")
	require.EqualValues(t, 2, req.Body["page"])
	require.Equal(t, "Bearer test", req.Header.Get("Authorization"))
	require.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestResource_GetNotFound(t *testing.T) {
	client, _ := newTestServer(t, func(r recordedRequest) (int, string) {
		return http.StatusNotFound, `{"status":404,"success":false,"message":"partner not found"}`
	})

	_, err := NewResource[partner](client, "/partners/").Get(t.Context(), "42")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestResource_NonEnvelopeError(t *testing.T) {
	client, _ := newTestServer(t, func(r recordedRequest) (int, string) {
		return http.StatusBadGateway, `upstream down`
	})

	_, err := NewResource[partner](client, "partners").Get(t.Context(), "42")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestResource_SaveCreatesAndUpdates(t *testing.T) {
	client, seen := newTestServer(t, func(r recordedRequest) (int, string) {
		if r.Method == http.MethodPut {
			return http.StatusOK, `{"status":409,"success":false,"message":"stale"}`
		}
		return http.StatusOK, `{"status":200,"success":true,"data":{"id":"9","name":"New","version":1}}`
	})
	partners := NewResource[partner](client, "partners")

	created, err := partners.Save(t.Context(), "", map[string]any{"name": "New"})
	require.NoError(t, err)
	require.True(t, created.OK())
	require.Equal(t, "9", created.Data.ID)

	updated, err := partners.Save(t.Context(), "9", map[string]any{"name": "Renamed", "version": 0})
	require.NoError(t, err)
	require.False(t, updated.OK())
	require.Equal(t, http.StatusConflict, updated.StatusCode)

	require.Equal(t, "/api/partners", (*seen)[0].Path)
	require.Equal(t, "/api/partners/9", (*seen)[1].Path)
}

func TestResource_CheckAndDeleteMultiple(t *testing.T) {
	client, seen := newTestServer(t, func(r recordedRequest) (int, string) {
		switch r.Path {
		case "/api/partners/check-delete-multiple":
			return http.StatusOK, `{"status":200,"success":true,"data":{"hasError":true,"payload":{"blocked":["1"]}}}`
		default:
			return http.StatusOK, `{"status":200,"success":true,"data":null}`
		}
	})
	partners := NewResource[partner](client, "partners")
	items := []bulkdelete.Candidate{{ID: "1", Name: "Acme", Code: "P1", Version: 5}}

	check, err := partners.CheckDeleteMultiple(t.Context(), items)
	require.NoError(t, err)
	require.True(t, check.Success)
	require.True(t, check.Report.HasError)
	require.JSONEq(t, `{"blocked":["1"]}`, string(check.Report.Payload))

	commit, err := partners.DeleteMultiple(t.Context(), items)
	require.NoError(t, err)
	require.Equal(t, bulkdelete.CommitResult{Success: true, StatusCode: StatusSuccess}, commit)

	sent := (*seen)[1].Body["items"].([]any)[0].(map[string]any)
	require.EqualValues(t, 5, sent["version"], "version is echoed back unchanged")
	require.Equal(t, "/api/partners/delete-multiple", partners.DeleteURL())
}

func TestResource_DeleteMultipleFailureNeverReportsSuccessCode(t *testing.T) {
	client, _ := newTestServer(t, func(r recordedRequest) (int, string) {
		return http.StatusOK, `{"status":200,"success":false,"message":"version mismatch"}`
	})

	commit, err := NewResource[partner](client, "partners").DeleteMultiple(t.Context(), []bulkdelete.Candidate{{ID: "1"}})
	require.NoError(t, err)
	require.False(t, commit.Success)
	require.NotEqual(t, StatusSuccess, commit.StatusCode)
}
