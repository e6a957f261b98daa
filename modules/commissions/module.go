package commissions

import (
	"github.com/gorilla/mux"

	adminServices "github.com/plexdi/studio/modules/admin/services"
	"github.com/plexdi/studio/modules/billing/infrastructure/payments"
	"github.com/plexdi/studio/modules/commissions/infrastructure/cache"
	"github.com/plexdi/studio/modules/commissions/infrastructure/studioapi"
	"github.com/plexdi/studio/modules/commissions/presentation/controllers"
	"github.com/plexdi/studio/modules/commissions/services"
	"github.com/plexdi/studio/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

// Register wires the commission lifecycle: the remote backend client,
// the admin panel's optimistic cache, and the public intake saga.
// Depends on the admin module being registered first for the session
// gate.
func (m *Module) Register(app application.Application) error {
	apiClient := studioapi.NewClient()
	checkoutClient := payments.NewClient()
	commissionCache := cache.New()

	app.RegisterServices(
		services.NewSyncService(apiClient, commissionCache, app.EventPublisher()),
		services.NewIntakeService(apiClient, checkoutClient, app.EventPublisher()),
	)

	auth := app.Service(adminServices.AuthService{}).(*adminServices.AuthService)
	app.RegisterControllers(
		controllers.NewIntakeController(controllers.IntakeControllerConfig{
			BasePath: "/commissions",
			App:      app,
		}),
		controllers.NewAdminCommissionsController(controllers.AdminCommissionsControllerConfig{
			BasePath:    "/admin/api/commissions",
			App:         app,
			Middlewares: []mux.MiddlewareFunc{auth.RequireSession()},
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "commissions"
}
