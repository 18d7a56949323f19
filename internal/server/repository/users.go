package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/logger"
)

type UsersRepository struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewUsersRepository(db *sql.DB, log *logger.HTTPLogger) *UsersRepository {
	return &UsersRepository{db: db, log: sugar(log)}
}

// Create добавляет пользователя и возвращает строку с id и created_at из базы.
//
// Ошибки:
//   - ErrAlreadyExists — email уже занят
//   - ErrInternal      — ошибка базы данных
func (r *UsersRepository) Create(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	u := models.User{Email: email, Name: name, PasswordHash: passwordHash}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		email, name, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.User{}, serr.ErrAlreadyExists
		}
		r.log.Errorw("insert user", "error", err)
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// GetByEmail ищет пользователя по email (email хранится в нижнем регистре).
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)
}

// GetByID ищет пользователя по id.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE id = $1`,
		id,
	)
}

func (r *UsersRepository) getOne(ctx context.Context, query string, arg any) (models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		r.log.Errorw("select user", "error", err)
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}
