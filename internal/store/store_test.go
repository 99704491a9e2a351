package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
		{"synchronous", "1"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestPragmasOnEveryConnection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Hold both connections open so the pool has to dial a second one.
	c1, err := s.DB().Conn(ctx)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := s.DB().Conn(ctx)
	require.NoError(t, err)
	defer c2.Close()

	for i, c := range []*sql.Conn{c1, c2} {
		var sync, fk int
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA synchronous").Scan(&sync))
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		assert.Equal(t, 1, sync, "conn %d synchronous", i)
		assert.Equal(t, 1, fk, "conn %d foreign_keys", i)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"users", "auth_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}

	var trigger string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='users_updated_at'",
	).Scan(&trigger)
	require.NoError(t, err)
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.UserRepo().Create(context.Background(), NewUser{Username: "a", Email: "a@x.io", PasswordHash: "h"})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	users, err := s2.UserRepo().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, NewUser{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$04$hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "alice", byEmail.Username)
	assert.Equal(t, "$2a$04$hash", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestUserGetMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	_, err := repo.Create(ctx, NewUser{Username: "a", Email: "dup@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, NewUser{Username: "b", Email: "dup@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserListAndDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	for _, email := range []string{"one@example.com", "two@example.com", "three@example.com"} {
		_, err := repo.Create(ctx, NewUser{Username: email[:3], Email: email, PasswordHash: "h"})
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "one@example.com", users[0].Email)
	assert.Equal(t, "three@example.com", users[2].Email)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAuthEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []AuthEventData{
		{Kind: EventRegister, UserID: 1, Email: "a@example.com"},
		{Kind: EventLoginFailed, Email: "ghost@example.com"},
		{Kind: EventLogin, UserID: 1, Email: "a@example.com"},
		{Kind: EventLogout, UserID: 1, Email: "a@example.com"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendAuthEvent(ctx, e))
	}

	all, err := repo.QueryAuthEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, EventLogout, all[0].Kind, "newest first")
	assert.Equal(t, int64(4), all[0].Sequence)
	assert.Equal(t, EventRegister, all[3].Kind)

	failed, err := repo.QueryAuthEvents(ctx, QueryOpts{Kind: EventLoginFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Zero(t, failed[0].UserID)
	assert.Equal(t, "ghost@example.com", failed[0].Email)

	limited, err := repo.QueryAuthEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	after, err := repo.QueryAuthEvents(ctx, QueryOpts{After: 2})
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestAuthEventsSequenceSurvivesDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAuthEvent(ctx, AuthEventData{Kind: EventLogin, UserID: 1}))
	require.NoError(t, repo.AppendAuthEvent(ctx, AuthEventData{Kind: EventLogout, UserID: 1}))

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, repo.AppendAuthEvent(ctx, AuthEventData{Kind: EventLogin, UserID: 1}))
	all, err := repo.QueryAuthEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(3), all[0].Sequence)
}

func TestWithConnPragmas(t *testing.T) {
	assert.Equal(t,
		"a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		withConnPragmas("a.db"))
	assert.Equal(t,
		"file:a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		withConnPragmas("file:a.db?mode=rwc"))
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("PASSGATE_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PASSGATE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passgate", "passgate.db"), got)
}
