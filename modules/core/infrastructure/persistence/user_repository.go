package persistence

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/infrastructure/persistence/models"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/repo"
)

const (
	selectUserQuery = `
		SELECT id, email, display_name, role, password_hash, created_at, updated_at
		FROM users`
	insertUserQuery = `
		INSERT INTO users (id, email, display_name, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id, email, display_name, role, password_hash, created_at, updated_at`
	countUsersQuery = `SELECT COUNT(*) FROM users`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (r *PgUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	id := u.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := tx.QueryRow(ctx, insertUserQuery,
		id.String(),
		u.Email(),
		u.DisplayName(),
		string(u.Role()),
		u.PasswordHash(),
	)
	created, err := scanUser(row)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, errors.Wrap(err, "failed to create user")
	}
	return created, nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	row := tx.QueryRow(ctx, selectUserQuery+" WHERE id = $1", id.String())
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "failed to get user by id")
	}
	return u, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	row := tx.QueryRow(ctx, selectUserQuery+" WHERE email = $1", strings.ToLower(strings.TrimSpace(email)))
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "failed to get user by email")
	}
	return u, nil
}

func (r *PgUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := " WHERE 1 = 1"
	args := []any{}
	if params != nil && params.Role != "" {
		args = append(args, string(params.Role))
		where += " AND role = $1"
	}

	query := selectUserQuery + where + " ORDER BY created_at DESC"
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, countUsersQuery+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}
	return users, total, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var m models.User
	if err := row.Scan(
		&m.ID,
		&m.Email,
		&m.DisplayName,
		&m.Role,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return user.User{}, err
	}
	return toDomainUser(&m)
}
