package website

import (
	"github.com/gorilla/mux"

	adminServices "github.com/plexdi/studio/modules/admin/services"
	"github.com/plexdi/studio/modules/website/content"
	"github.com/plexdi/studio/modules/website/presentation/controllers"
	"github.com/plexdi/studio/modules/website/services"
	"github.com/plexdi/studio/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

// Register loads the embedded catalog data and exposes it publicly
// under /api and, session-gated, under /admin/api/catalog for the
// dashboard's product view. Depends on the admin module being
// registered first.
func (m *Module) Register(app application.Application) error {
	designers, err := content.Designers()
	if err != nil {
		return err
	}
	pricingCategories, err := content.PricingCategories()
	if err != nil {
		return err
	}
	products, err := content.Products()
	if err != nil {
		return err
	}

	app.RegisterServices(
		services.NewCatalogService(designers, pricingCategories, products),
	)

	auth := app.Service(adminServices.AuthService{}).(*adminServices.AuthService)
	app.RegisterControllers(
		controllers.NewCatalogAPIController(controllers.CatalogAPIControllerConfig{
			BasePath: "/api",
			App:      app,
		}),
		controllers.NewCatalogAPIController(controllers.CatalogAPIControllerConfig{
			BasePath:    "/admin/api/catalog",
			App:         app,
			Middlewares: []mux.MiddlewareFunc{auth.RequireSession()},
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "website"
}
