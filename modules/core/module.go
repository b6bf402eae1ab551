package core

import (
	"embed"

	"github.com/stonedesk/stonedesk/modules/core/infrastructure/persistence"
	"github.com/stonedesk/stonedesk/modules/core/presentation/controllers"
	"github.com/stonedesk/stonedesk/modules/core/services"
	"github.com/stonedesk/stonedesk/pkg/application"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	userRepo := persistence.NewUserRepository()
	sessionRepo := persistence.NewSessionRepository()

	app.RegisterServices(
		services.NewUserService(userRepo, app.EventPublisher()),
		services.NewAuthService(userRepo, sessionRepo, app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewAuthAPIController(app),
		controllers.NewUsersAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
