package modules

import (
	"github.com/plexdi/studio/modules/admin"
	"github.com/plexdi/studio/modules/billing"
	"github.com/plexdi/studio/modules/commissions"
	"github.com/plexdi/studio/modules/website"
	"github.com/plexdi/studio/pkg/application"
)

// BuiltInModules in registration order: admin first, since the other
// modules fetch its auth service for their gated routes.
var BuiltInModules = []application.Module{
	admin.NewModule(),
	website.NewModule(),
	commissions.NewModule(),
	billing.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
