package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/modules/commissions/infrastructure/studioapi"
	"github.com/plexdi/studio/modules/commissions/presentation/controllers/dtos"
	"github.com/plexdi/studio/modules/commissions/services"
	"github.com/plexdi/studio/pkg/application"
	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/httpapi"
)

type AdminCommissionsControllerConfig struct {
	BasePath    string
	App         application.Application
	Middlewares []mux.MiddlewareFunc // session gate goes here
}

// AdminCommissionsController exposes the dashboard's commission
// operations. Mutating routes take the caller's last-seen revision (via
// the X-Cache-Revision header or a `revision` field) so overlapping
// admin edits surface as a 409 instead of silently clobbering each
// other.
type AdminCommissionsController struct {
	basePath    string
	app         application.Application
	sync        *services.SyncService
	middlewares []mux.MiddlewareFunc
}

func NewAdminCommissionsController(cfg AdminCommissionsControllerConfig) application.Controller {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/admin/api/commissions"
	}
	return &AdminCommissionsController{
		basePath:    basePath,
		app:         cfg.App,
		sync:        cfg.App.Service(services.SyncService{}).(*services.SyncService),
		middlewares: cfg.Middlewares,
	}
}

func (c *AdminCommissionsController) Key() string {
	return "AdminCommissionsController"
}

func (c *AdminCommissionsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	for _, mw := range c.middlewares {
		router.Use(mw)
	}

	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/refresh", c.refresh).Methods(http.MethodPost)
	router.HandleFunc("/counts", c.counts).Methods(http.MethodGet)
	router.HandleFunc("/{id}/status", c.updateStatus).Methods(http.MethodPatch)
	router.HandleFunc("/{id}", c.delete).Methods(http.MethodDelete)
}

func revisionFrom(r *http.Request) uint64 {
	raw := r.Header.Get("X-Cache-Revision")
	if raw == "" {
		raw = r.URL.Query().Get("revision")
	}
	revision, _ := strconv.ParseUint(raw, 10, 64)
	return revision
}

func (c *AdminCommissionsController) list(w http.ResponseWriter, r *http.Request) {
	items, revision, err := c.sync.List(r.Context())
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, dtos.NewCommissionListResponse(items, revision))
}

func (c *AdminCommissionsController) refresh(w http.ResponseWriter, r *http.Request) {
	items, revision, err := c.sync.Refresh(r.Context())
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, dtos.NewCommissionListResponse(items, revision))
}

func (c *AdminCommissionsController) counts(w http.ResponseWriter, r *http.Request) {
	counts, err := c.sync.Counts(r.Context())
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]int{
		"total":       counts.Total,
		"queued":      counts.Queued,
		"in_progress": counts.InProgress,
		"completed":   counts.Completed,
	})
}

func (c *AdminCommissionsController) create(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	var dto dtos.AdminCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.WithError(err).Error("failed to decode create request")
		httpapi.WriteError(r.Context(), w, http.StatusBadRequest, "invalid request body", dtos.ErrorCodeInvalidRequest)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		httpapi.WriteValidationError(r.Context(), w, fields)
		return
	}

	created, err := c.sync.Create(r.Context(), revisionFrom(r), studioapi.CreateParams{
		Name:    dto.Name,
		Email:   dto.Email,
		Discord: dto.Discord,
		Details: dto.Details,
		Kind:    dto.Kind(),
	})
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, dtos.NewCommissionResponse(created))
}

func (c *AdminCommissionsController) updateStatus(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	id := mux.Vars(r)["id"]

	var dto dtos.UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.WithError(err).Error("failed to decode status update")
		httpapi.WriteError(r.Context(), w, http.StatusBadRequest, "invalid request body", dtos.ErrorCodeInvalidRequest)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		httpapi.WriteValidationError(r.Context(), w, fields)
		return
	}
	status, _ := commission.ParseStatusDisplay(dto.Status)

	revision := dto.Revision
	if revision == 0 {
		revision = revisionFrom(r)
	}
	if err := c.sync.UpdateStatus(r.Context(), revision, id, status); err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}

func (c *AdminCommissionsController) delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.sync.Delete(r.Context(), revisionFrom(r), id); err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
