package samplerequest

import (
	"embed"

	"github.com/stonedesk/stonedesk/modules/samplerequest/infrastructure/persistence"
	"github.com/stonedesk/stonedesk/modules/samplerequest/presentation/controllers"
	"github.com/stonedesk/stonedesk/modules/samplerequest/services"
	"github.com/stonedesk/stonedesk/pkg/application"
)

//go:embed infrastructure/persistence/schema/samplerequest-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewSampleRequestService(
			persistence.NewSampleRequestRepository(),
			app.EventPublisher(),
		),
	)
	app.RegisterControllers(
		controllers.NewSampleRequestsAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "samplerequest"
}
