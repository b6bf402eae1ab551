package modules

import (
	"github.com/stonedesk/stonedesk/modules/core"
	"github.com/stonedesk/stonedesk/modules/notification"
	"github.com/stonedesk/stonedesk/modules/samplerequest"
	"github.com/stonedesk/stonedesk/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(),
	samplerequest.NewModule(),
	notification.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
