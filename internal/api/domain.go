package api

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rayan1381m/Back-end-V3/internal/sqlpatch"
)

type Game struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Likes    int64   `json:"likes" db:"likes"`
	Comments string  `json:"comments" db:"comments"`
	Price    float64 `json:"price" db:"price"`
}

// User is a row of the users table. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	IsAdmin  bool   `json:"isAdmin" db:"is_admin"`
	Password string `json:"-" db:"password"`
}

var gamesTable = sqlpatch.NewTable("games",
	sqlpatch.Column{Name: "name", Presence: sqlpatch.IfNonEmpty},
	sqlpatch.Column{Name: "likes", Presence: sqlpatch.IfSet},
	sqlpatch.Column{Name: "comments", Presence: sqlpatch.IfSet},
	sqlpatch.Column{Name: "price", Presence: sqlpatch.IfSet},
)

var usersTable = sqlpatch.NewTable("users",
	sqlpatch.Column{Name: "name", Presence: sqlpatch.IfNonEmpty},
	sqlpatch.Column{Name: "is_admin", Presence: sqlpatch.IfSet},
	sqlpatch.Column{Name: "password", Presence: sqlpatch.IfNonEmpty},
)

// GamePatch is the body of PUT/PATCH /games/{id}. Nil fields are left
// unchanged.
type GamePatch struct {
	Name     *string  `json:"name,omitempty"`
	Likes    *int64   `json:"likes,omitempty"`
	Comments *string  `json:"comments,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

func (p GamePatch) Validate() error {
	if p.Price != nil && *p.Price < 0 {
		return &validationError{msg: "price cannot be negative"}
	}
	return nil
}

func (p GamePatch) Values() sqlpatch.Values {
	v := sqlpatch.Values{}
	if p.Name != nil {
		v["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Likes != nil {
		v["likes"] = *p.Likes
	}
	if p.Comments != nil {
		v["comments"] = *p.Comments
	}
	if p.Price != nil {
		v["price"] = *p.Price
	}
	return v
}

// UserPatch is the body of PUT/PATCH /users/{id}. The handler replaces
// Password with its bcrypt hash before it reaches the store.
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (p UserPatch) Values() sqlpatch.Values {
	v := sqlpatch.Values{}
	if p.Name != nil {
		v["name"] = strings.TrimSpace(*p.Name)
	}
	if p.IsAdmin != nil {
		v["is_admin"] = *p.IsAdmin
	}
	if p.Password != nil {
		v["password"] = *p.Password
	}
	return v
}

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict matches a StoreError caused by a unique violation.
	ErrConflict = errors.New("already exists")
)

// StoreError wraps any failure reported by Postgres or the connection.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	if target != ErrConflict {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(e.Err, &pgErr) && pgErr.Code == "23505"
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}
