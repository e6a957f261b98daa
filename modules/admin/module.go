package admin

import (
	"github.com/plexdi/studio/modules/admin/domain/entities/session"
	"github.com/plexdi/studio/modules/admin/presentation/controllers"
	"github.com/plexdi/studio/modules/admin/services"
	"github.com/plexdi/studio/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	sessionRepo := session.NewInMemoryRepository()
	app.RegisterServices(
		services.NewAuthService(sessionRepo),
	)
	app.RegisterControllers(
		controllers.NewAuthController(controllers.AuthControllerConfig{
			BasePath: "/admin/api",
			App:      app,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "admin"
}
