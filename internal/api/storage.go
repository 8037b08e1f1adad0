package api

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

type Store interface {
	GetGame(ctx context.Context, id int64) (Game, error)
	GetGameByName(ctx context.Context, name string) (Game, error)
	CreateGame(ctx context.Context, g Game) (Game, error)
	UpdateGame(ctx context.Context, id int64, p GamePatch) (Game, error)
	DeleteGame(ctx context.Context, id int64) error
	DeleteGameByName(ctx context.Context, name string) error

	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByName(ctx context.Context, name string) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, id int64, p UserPatch) (User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteUserByName(ctx context.Context, name string) error
}

// DB is the subset of *pgxpool.Pool the store uses, so a pgxmock pool can
// stand in for tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func AutoMigrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users(
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            is_admin BOOLEAN NOT NULL DEFAULT false,
            password TEXT NOT NULL
        )
    `); err != nil {
		log.Error().Err(err).Msg("migrate users")
		return err
	}

	if _, err := db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS games(
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            likes BIGINT NOT NULL DEFAULT 0,
            comments TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL DEFAULT 0
        )
    `); err != nil {
		log.Error().Err(err).Msg("migrate games")
		return err
	}

	if _, err := db.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_games_name ON games(name)`); err != nil {
		log.Warn().Err(err).Msg("migrate games name index")
	}
	return nil
}

func (s *PostgresStore) GetGame(ctx context.Context, id int64) (Game, error) {
	return queryOne[Game](ctx, s.db, "get game", `SELECT * FROM games WHERE id = $1`, id)
}

// GetGameByName returns the lowest-id game with that name; names are not
// unique.
func (s *PostgresStore) GetGameByName(ctx context.Context, name string) (Game, error) {
	return queryOne[Game](ctx, s.db, "get game by name", `SELECT * FROM games WHERE name = $1 ORDER BY id LIMIT 1`, name)
}

func (s *PostgresStore) CreateGame(ctx context.Context, g Game) (Game, error) {
	return queryOne[Game](ctx, s.db, "create game", `
        INSERT INTO games (name, likes, comments, price)
        VALUES ($1, $2, $3, $4)
        RETURNING *
    `, g.Name, g.Likes, g.Comments, g.Price)
}

// UpdateGame applies the present fields of p. An empty patch returns
// sqlpatch.ErrEmptyUpdate without a round trip.
func (s *PostgresStore) UpdateGame(ctx context.Context, id int64, p GamePatch) (Game, error) {
	st, err := gamesTable.Update(id, p.Values())
	if err != nil {
		return Game{}, err
	}
	return queryOne[Game](ctx, s.db, "update game", st.SQL, st.Args...)
}

func (s *PostgresStore) DeleteGame(ctx context.Context, id int64) error {
	return execAffecting(ctx, s.db, "delete game", `DELETE FROM games WHERE id = $1`, id)
}

func (s *PostgresStore) DeleteGameByName(ctx context.Context, name string) error {
	return execAffecting(ctx, s.db, "delete game by name", `DELETE FROM games WHERE name = $1`, name)
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (User, error) {
	return queryOne[User](ctx, s.db, "get user", `SELECT * FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) GetUserByName(ctx context.Context, name string) (User, error) {
	return queryOne[User](ctx, s.db, "get user by name", `SELECT * FROM users WHERE name = $1`, name)
}

// CreateUser expects u.Password to already be hashed.
func (s *PostgresStore) CreateUser(ctx context.Context, u User) (User, error) {
	return queryOne[User](ctx, s.db, "create user", `
        INSERT INTO users (name, is_admin, password)
        VALUES ($1, $2, $3)
        RETURNING *
    `, u.Name, u.IsAdmin, u.Password)
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int64, p UserPatch) (User, error) {
	st, err := usersTable.Update(id, p.Values())
	if err != nil {
		return User{}, err
	}
	return queryOne[User](ctx, s.db, "update user", st.SQL, st.Args...)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	return execAffecting(ctx, s.db, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) DeleteUserByName(ctx context.Context, name string) error {
	return execAffecting(ctx, s.db, "delete user by name", `DELETE FROM users WHERE name = $1`, name)
}

// queryOne runs a statement expected to return at most one row and scans it
// into T by column name.
func queryOne[T any](ctx context.Context, db DB, op, sql string, args ...any) (T, error) {
	var zero T
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return zero, &StoreError{Op: op, Err: err}
	}
	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, &StoreError{Op: op, Err: err}
	}
	return v, nil
}

func execAffecting(ctx context.Context, db DB, op, sql string, args ...any) error {
	res, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return &StoreError{Op: op, Err: err}
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
