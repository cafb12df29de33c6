package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/and161185/contact-keeper/internal/errs"
	"github.com/and161185/contact-keeper/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "pwd_hash", "salt", "created_at"}

func TestUserRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		Email:   "alice@example.com",
		PwdHash: []byte("h"),
		Salt:    []byte("s"),
	}

	// OK
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO users \(email, pwd_hash, salt\)`).
		WithArgs(u.Email, u.PwdHash, u.Salt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))
	require.NoError(t, r.Create(ctx, u))
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, created, u.CreatedAt)

	// Unique violation
	mock.ExpectQuery(`INSERT INTO users \(email, pwd_hash, salt\)`).
		WithArgs(u.Email, u.PwdHash, u.Salt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := r.Create(ctx, u)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, email, pwd_hash, salt, created_at\s+FROM users WHERE id=\$1`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(42), "alice@example.com", []byte("h"), []byte("s"), time.Now()))
	u, err := r.GetByID(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), u.ID)

	mock.ExpectQuery(`SELECT id, email, pwd_hash, salt, created_at\s+FROM users WHERE id=\$1`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, 42)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	email := "bob@example.com"

	mock.ExpectQuery(`SELECT id, email, pwd_hash, salt, created_at\s+FROM users WHERE email=\$1`).
		WithArgs(email).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(7), email, []byte("h"), []byte("s"), time.Now()))
	u, err := r.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, email, u.Email)

	mock.ExpectQuery(`SELECT id, email, pwd_hash, salt, created_at\s+FROM users WHERE email=\$1`).
		WithArgs(email).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, email)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
