package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdi/studio/modules/commissions/presentation/controllers"
	"github.com/plexdi/studio/modules/commissions/presentation/controllers/dtos"
)

// adminBackend serves a mutable two-record commission list.
func adminBackend(t *testing.T, failMutations bool) *httptest.Server {
	t.Helper()
	var nextID atomic.Int64
	nextID.Store(100)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failMutations && r.Method != http.MethodGet {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"backend down"}`))
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/commissions":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id":"1","name":"Ada","email":"a@x.com","type":"banner","status":"queued"},
				{"id":"2","name":"Bea","email":"b@x.com","type":"logo","status":"in_progress"}
			]`))
		case r.Method == http.MethodPost && r.URL.Path == "/commissions":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = fmt.Fprintf(w, `{"id":"%d","name":"Cy","email":"c@x.com","type":"emotes","status":"queued"}`, nextID.Add(1))
		case r.Method == http.MethodPatch, r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAdminRouter(t *testing.T, baseURL string) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	controller := controllers.NewAdminCommissionsController(controllers.AdminCommissionsControllerConfig{
		BasePath: "/admin/api/commissions",
		App:      newTestApp(t, baseURL),
	})
	controller.Register(router)
	return router
}

func fetchList(t *testing.T, router *mux.Router) dtos.CommissionListResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/commissions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list dtos.CommissionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestAdminCommissionsController_ListMapsDisplayForms(t *testing.T) {
	t.Parallel()

	router := newAdminRouter(t, adminBackend(t, false).URL)
	list := fetchList(t, router)

	require.Len(t, list.Commissions, 2)
	assert.Positive(t, list.Revision)
	assert.Equal(t, "queued", list.Commissions[0].Status)
	assert.Equal(t, "Queued", list.Commissions[0].StatusDisplay)
	assert.Equal(t, "in_progress", list.Commissions[1].Status)
	assert.Equal(t, "In Progress", list.Commissions[1].StatusDisplay)
	assert.Equal(t, "Logo", list.Commissions[1].TypeDisplay)
}

func TestAdminCommissionsController_CountsEndpoint(t *testing.T) {
	t.Parallel()

	router := newAdminRouter(t, adminBackend(t, false).URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/commissions/counts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var counts map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	assert.Equal(t, 2, counts["total"])
	assert.Equal(t, 1, counts["queued"])
	assert.Equal(t, 1, counts["in_progress"])
	assert.Equal(t, 0, counts["completed"])
}

func TestAdminCommissionsController_UpdateStatusAcceptsDisplayForm(t *testing.T) {
	t.Parallel()

	router := newAdminRouter(t, adminBackend(t, false).URL)
	list := fetchList(t, router)

	body := fmt.Sprintf(`{"status":"Completed","revision":%d}`, list.Revision)
	req := httptest.NewRequest(http.MethodPatch, "/admin/api/commissions/1/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed"`)

	updated := fetchList(t, router)
	// List read does not refetch, so the optimistic edit is visible.
	assert.Equal(t, "Completed", updated.Commissions[0].StatusDisplay)
}

func TestAdminCommissionsController_StaleRevisionConflicts(t *testing.T) {
	t.Parallel()

	router := newAdminRouter(t, adminBackend(t, false).URL)
	list := fetchList(t, router)

	body := fmt.Sprintf(`{"status":"Completed","revision":%d}`, list.Revision)
	req := httptest.NewRequest(http.MethodPatch, "/admin/api/commissions/1/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Replay with the now-stale revision.
	req = httptest.NewRequest(http.MethodPatch, "/admin/api/commissions/2/status", strings.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), dtos.ErrorCodeStaleView)
}

func TestAdminCommissionsController_DeleteRemovesRecord(t *testing.T) {
	t.Parallel()

	router := newAdminRouter(t, adminBackend(t, false).URL)
	list := fetchList(t, router)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/api/commissions/1?revision=%d", list.Revision), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	updated := fetchList(t, router)
	require.Len(t, updated.Commissions, 1)
	assert.Equal(t, "2", updated.Commissions[0].ID)
}

func TestAdminCommissionsController_FailedDeleteRestoresRecord(t *testing.T) {
	t.Parallel()

	router := newAdminRouter(t, adminBackend(t, true).URL)
	list := fetchList(t, router)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/api/commissions/1?revision=%d", list.Revision), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend down")

	updated := fetchList(t, router)
	assert.Len(t, updated.Commissions, 2, "record reinserted after failed delete")
}

func TestAdminCommissionsController_CreateConfirmsOptimisticRecord(t *testing.T) {
	t.Parallel()

	router := newAdminRouter(t, adminBackend(t, false).URL)
	list := fetchList(t, router)

	body := `{"name":"Cy","email":"c@x.com","type":"emotes"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/api/commissions", strings.NewReader(body))
	req.Header.Set("X-Cache-Revision", fmt.Sprint(list.Revision))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created dtos.CommissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.Optimistic)
	assert.Equal(t, "101", created.ID)

	updated := fetchList(t, router)
	require.Len(t, updated.Commissions, 3)
	assert.Equal(t, "101", updated.Commissions[0].ID, "confirmed record sits at the head")
}

func TestAdminCommissionsController_CreateWithNameOnlyDefaultsType(t *testing.T) {
	t.Parallel()

	var createBody map[string]any
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/commissions":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		case r.Method == http.MethodPost && r.URL.Path == "/commissions":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createBody))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"7","name":"Ada","type":"general","status":"queued"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(backendSrv.Close)

	router := newAdminRouter(t, backendSrv.URL)
	list := fetchList(t, router)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/commissions", strings.NewReader(`{"name":"Ada"}`))
	req.Header.Set("X-Cache-Revision", fmt.Sprint(list.Revision))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "general", createBody["type"])

	var created dtos.CommissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "General", created.TypeDisplay)
}

func TestAdminCommissionsController_FailedCreateDiscarded(t *testing.T) {
	t.Parallel()

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"1","name":"Ada","email":"a@x.com","type":"banner","status":"queued"}]`))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"name required"}`))
	}))
	t.Cleanup(backendSrv.Close)

	router := newAdminRouter(t, backendSrv.URL)
	list := fetchList(t, router)

	body := `{"name":"Cy","email":"c@x.com","type":"emotes"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/api/commissions", strings.NewReader(body))
	req.Header.Set("X-Cache-Revision", fmt.Sprint(list.Revision))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "name required")

	updated := fetchList(t, router)
	assert.Len(t, updated.Commissions, 1, "optimistic record discarded after rejection")
}
