package notification

import (
	"embed"

	"github.com/stonedesk/stonedesk/modules/notification/handlers"
	"github.com/stonedesk/stonedesk/modules/notification/infrastructure/persistence"
	"github.com/stonedesk/stonedesk/modules/notification/presentation/controllers"
	"github.com/stonedesk/stonedesk/modules/notification/services"
	"github.com/stonedesk/stonedesk/pkg/application"
)

//go:embed infrastructure/persistence/schema/notification-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewNotificationService(persistence.NewNotificationRepository()),
	)
	app.RegisterControllers(
		controllers.NewNotificationsAPIController(app),
	)
	handlers.RegisterSampleRequestEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "notification"
}
