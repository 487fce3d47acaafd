package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"schedulebot/internal/entity"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, users *UserRepository, login, role, name string, junior, senior bool) entity.User {
	t.Helper()
	u := entity.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: "x",
		Role:         role,
		DisplayName:  name,
		IsJunior:     junior,
		IsSenior:     senior,
	}
	require.NoError(t, users.Create(&u))
	return u
}
