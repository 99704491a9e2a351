package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var userColumns = []string{colID, colUsername, colEmail, colPasswordHash, colCreatedAt, colUpdatedAt}

// userRepo implements UserRepo with ent's SQL builder.
type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Create(ctx context.Context, u NewUser) (*User, error) {
	now := time.Now().UTC()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(usersTable).
		Columns(colUsername, colEmail, colPasswordHash, colCreatedAt, colUpdatedAt).
		Values(u.Username, u.Email, u.PasswordHash, now, now).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &User{
		ID:           int(id),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*User, error) {
	return r.getOne(ctx, entsql.EQ(colID, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, entsql.EQ(colEmail, email))
}

func (r *userRepo) getOne(ctx context.Context, where *entsql.Predicate) (*User, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(userColumns...).
		From(entsql.Table(usersTable)).
		Where(where).
		Limit(1).
		Query()

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]User, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(userColumns...).
		From(entsql.Table(usersTable)).
		OrderBy(colID).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepo) DeleteAll(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).Delete(usersTable).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete users: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
