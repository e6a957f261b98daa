package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/modules/commissions/presentation/controllers/dtos"
	"github.com/plexdi/studio/modules/commissions/services"
	"github.com/plexdi/studio/pkg/application"
	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/httpapi"
)

type IntakeControllerConfig struct {
	BasePath string
	App      application.Application
}

// IntakeController serves the public commission form submission. A
// successful submission ends in a redirect (or, for JSON clients, a
// payload) pointing at the payment provider's hosted checkout.
type IntakeController struct {
	basePath    string
	app         application.Application
	intake      *services.IntakeService
	formDecoder *form.Decoder
}

func NewIntakeController(cfg IntakeControllerConfig) application.Controller {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/commissions"
	}
	return &IntakeController{
		basePath:    basePath,
		app:         cfg.App,
		intake:      cfg.App.Service(services.IntakeService{}).(*services.IntakeService),
		formDecoder: form.NewDecoder(),
	}
}

func (c *IntakeController) Key() string {
	return "IntakeController"
}

func (c *IntakeController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/submit", c.submit).Methods(http.MethodPost)
	router.HandleFunc("/types", c.projectTypes).Methods(http.MethodGet)
}

func (c *IntakeController) decode(r *http.Request, dto *dtos.IntakeDTO) error {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(dto)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	return c.formDecoder.Decode(dto, r.PostForm)
}

func (c *IntakeController) submit(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	var dto dtos.IntakeDTO
	if err := c.decode(r, &dto); err != nil {
		logger.WithError(err).Error("failed to decode intake submission")
		httpapi.WriteError(r.Context(), w, http.StatusBadRequest, "invalid request body", dtos.ErrorCodeInvalidRequest)
		return
	}

	if fields, ok := dto.Ok(); !ok {
		httpapi.WriteValidationError(r.Context(), w, fields)
		return
	}
	kind, _ := commission.ParseKind(dto.Type)

	result, err := c.intake.Submit(r.Context(), services.IntakeParams{
		Name:    dto.Name,
		Email:   dto.Email,
		Discord: dto.Discord,
		Details: dto.Details,
		Kind:    kind,
		Item:    dto.Item,
		Tier:    dto.Tier,
	})
	if err != nil {
		writeUpstreamError(r.Context(), w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		httpapi.WriteJSON(w, http.StatusCreated, dtos.IntakeResponse{
			CommissionID: result.Commission.ID(),
			CheckoutURL:  result.CheckoutURL,
		})
		return
	}
	http.Redirect(w, r, result.CheckoutURL, http.StatusSeeOther)
}

func (c *IntakeController) projectTypes(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Value   string `json:"value"`
		Display string `json:"display"`
	}
	kinds := commission.Kinds()
	types := make([]entry, 0, len(kinds))
	for _, k := range kinds {
		types = append(types, entry{Value: string(k), Display: k.Display()})
	}
	tierValues := commission.Tiers()
	tiers := make([]entry, 0, len(tierValues))
	for _, t := range tierValues {
		tiers = append(tiers, entry{Value: string(t), Display: t.Display()})
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string][]entry{
		"types": types,
		"tiers": tiers,
	})
}
