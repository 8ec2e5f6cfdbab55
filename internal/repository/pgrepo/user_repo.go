package pgrepo

import (
	"context"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const userColumns = `u.id, u.created_at, u.updated_at, u.name, u.email, u.encrypted_password, u.role::text`

// subscriptions are aggregated into the user row so that a single query returns the whole identity.
const userSelect = `SELECT ` + userColumns + `,
       COALESCE(array_agg(s.course_id ORDER BY s.created_at) FILTER (WHERE s.course_id IS NOT NULL), '{}')
FROM users u
         LEFT JOIN subscriptions s ON s.user_id = u.id
`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser creates a user. Returns domain.ErrDuplicateKey when the email is taken,
// domain.ErrUnknown otherwise.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	const query = `INSERT INTO users AS u (name, email, encrypted_password, role)
VALUES ($1, $2, $3, $4::user_role)
RETURNING ` + userColumns

	row := u.conn.QueryRow(ctx, query, user.Name, user.Email, user.Password, string(user.Role))
	dbUser, err := scanUser(row, false)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return dbUser, nil
}

// FindByID returns the user with its subscription set or domain.ErrRecordNotFound.
func (u *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, userSelect+`WHERE u.id = $1 GROUP BY u.id`, id)
	dbUser, err := scanUser(row, true)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return dbUser, nil
}

// FindByEmail looks the user up case-insensitively.
func (u *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, userSelect+`WHERE lower(u.email) = lower($1) GROUP BY u.id`, email)
	dbUser, err := scanUser(row, true)
	if err != nil {
		return nil, convertErr(err, "finding user by email %s", email)
	}
	return dbUser, nil
}

func (u *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := u.conn.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return 0, convertErr(err, "counting users")
	}
	return total, nil
}

func scanUser(row pgx.Row, withSubscription bool) (*domain.User, error) {
	var user domain.User
	var role string
	dest := []any{
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Name,
		&user.Email,
		&user.Password,
		&role,
	}
	if withSubscription {
		dest = append(dest, &user.Subscription)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err //nolint:wrapcheck
	}
	user.Role = domain.RoleType(role)
	if user.Subscription == nil {
		user.Subscription = []int64{}
	}
	return &user, nil
}
