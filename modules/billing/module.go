package billing

import (
	"github.com/plexdi/studio/modules/billing/presentation/controllers"
	"github.com/plexdi/studio/pkg/application"
	"github.com/plexdi/studio/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	app.RegisterControllers(
		controllers.NewPaymentResultController(controllers.PaymentResultControllerConfig{
			SuccessPath: conf.Payments.SuccessPath,
			CancelPath:  conf.Payments.CancelPath,
			App:         app,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "billing"
}
