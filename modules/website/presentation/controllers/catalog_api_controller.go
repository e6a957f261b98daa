package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plexdi/studio/modules/website/domain/entities/product"
	"github.com/plexdi/studio/modules/website/services"
	"github.com/plexdi/studio/pkg/application"
	"github.com/plexdi/studio/pkg/httpapi"
	"github.com/plexdi/studio/pkg/serrors"
)

type CatalogAPIControllerConfig struct {
	BasePath    string
	App         application.Application
	Middlewares []mux.MiddlewareFunc
}

// CatalogAPIController exposes the public site's read-only data: the
// designer showcases with their classified category tabs, the pricing
// tables, and the shop listing with its filter/sort controls.
type CatalogAPIController struct {
	basePath    string
	app         application.Application
	catalog     *services.CatalogService
	middlewares []mux.MiddlewareFunc
}

func NewCatalogAPIController(cfg CatalogAPIControllerConfig) application.Controller {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api"
	}
	return &CatalogAPIController{
		basePath:    basePath,
		app:         cfg.App,
		catalog:     cfg.App.Service(services.CatalogService{}).(*services.CatalogService),
		middlewares: cfg.Middlewares,
	}
}

// Key includes the base path so the same controller can be mounted
// both publicly and behind the admin gate.
func (c *CatalogAPIController) Key() string {
	return "CatalogAPIController:" + c.basePath
}

func (c *CatalogAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	for _, mw := range c.middlewares {
		router.Use(mw)
	}

	router.HandleFunc("/designers", c.designers).Methods(http.MethodGet)
	router.HandleFunc("/designers/{id}/categories", c.designerCategories).Methods(http.MethodGet)
	router.HandleFunc("/pricing", c.pricing).Methods(http.MethodGet)
	router.HandleFunc("/shop/products", c.products).Methods(http.MethodGet)
	router.HandleFunc("/shop/products/{slug}", c.productBySlug).Methods(http.MethodGet)
}

func (c *CatalogAPIController) designers(w http.ResponseWriter, r *http.Request) {
	httpapi.WriteJSON(w, http.StatusOK, c.catalog.Designers())
}

// writeCatalogError maps catalog lookup failures onto the JSON error
// envelope, keeping the service's error codes intact.
func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	var base *serrors.Base
	if errors.As(err, &base) {
		httpapi.WriteError(r.Context(), w, http.StatusNotFound, base.Message, base.Code)
		return
	}
	httpapi.WriteError(r.Context(), w, http.StatusInternalServerError, "internal error", "INTERNAL_SERVER_ERROR")
}

func (c *CatalogAPIController) designerCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.Categories(mux.Vars(r)["id"])
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, categories)
}

func (c *CatalogAPIController) pricing(w http.ResponseWriter, r *http.Request) {
	type tierResponse struct {
		ID         string   `json:"id"`
		Title      string   `json:"title"`
		PriceLabel string   `json:"price_label"`
		Summary    string   `json:"summary"`
		Includes   []string `json:"includes"`
		Excludes   []string `json:"excludes,omitempty"`
		BestFor    string   `json:"best_for"`
		Highlight  bool     `json:"highlight"`
	}
	type categoryResponse struct {
		ID          string         `json:"id"`
		Label       string         `json:"label"`
		Description string         `json:"description"`
		Tiers       []tierResponse `json:"tiers"`
	}

	categories := c.catalog.PricingCategories()
	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		tiers := make([]tierResponse, 0, len(category.Tiers))
		for _, tier := range category.Tiers {
			tiers = append(tiers, tierResponse{
				ID:         tier.ID,
				Title:      tier.Title,
				PriceLabel: tier.PriceLabel(),
				Summary:    tier.Summary,
				Includes:   tier.Includes,
				Excludes:   tier.Excludes,
				BestFor:    tier.BestFor,
				Highlight:  tier.Highlight,
			})
		}
		out = append(out, categoryResponse{
			ID:          category.ID,
			Label:       category.Label,
			Description: category.Description,
			Tiers:       tiers,
		})
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *CatalogAPIController) products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := product.Filter{
		Query: query.Get("q"),
		Tag:   query.Get("tag"),
		Sort:  product.ParseSortOrder(query.Get("sort")),
	}

	type productCard struct {
		product.Product
		MinPriceLabel string `json:"min_price_label"`
	}
	items := c.catalog.Products(filter)
	out := make([]productCard, 0, len(items))
	for _, item := range items {
		out = append(out, productCard{Product: item, MinPriceLabel: item.MinPrice().Display()})
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *CatalogAPIController) productBySlug(w http.ResponseWriter, r *http.Request) {
	item, err := c.catalog.Product(mux.Vars(r)["slug"])
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, item)
}
