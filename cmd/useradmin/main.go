package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/infrastructure/persistence"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/configuration"
)

// useradmin creates users directly against the database. It is operator
// tooling: it bypasses the HTTP API and its session checks on purpose.
func main() {
	email := flag.String("email", "", "email address of the new user")
	name := flag.String("name", "", "display name of the new user")
	role := flag.String("role", "requester", "role: requester, coordinator or admin")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	dto := &user.CreateDTO{
		Email:       *email,
		DisplayName: *name,
		Role:        *role,
		Password:    *password,
	}
	if errs, ok := dto.Ok(); !ok {
		for field, message := range errs {
			log.Printf("%s: %s", field, message)
		}
		os.Exit(1)
	}
	entity, err := dto.ToEntity()
	if err != nil {
		log.Fatalf("failed to build user: %v", err)
	}

	conf := configuration.Use()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := persistence.NewUserRepository()
	ctx = composables.WithPool(ctx, pool)

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		if _, err := repo.GetByEmail(txCtx, entity.Email()); err == nil {
			return user.User{}, user.ErrEmailTaken
		} else if err != user.ErrNotFound {
			return user.User{}, err
		}
		return repo.Create(txCtx, entity)
	})
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	log.Printf("created %s user %s (%s)", created.Role(), created.Email(), created.ID())
}
