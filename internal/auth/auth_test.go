package auth

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schedulebot/internal/entity"
	"schedulebot/internal/storage"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *storage.UserRepository, *storage.SessionRepository) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := storage.NewUserRepository(db)
	sessions := storage.NewSessionRepository(db)
	return NewAuthenticator(users, sessions), users, sessions
}

func createUserWithPassword(t *testing.T, users *storage.UserRepository, login, password string) entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := entity.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: string(hash),
		Role:         entity.RoleTeacher,
		DisplayName:  "Иванов И.И.",
	}
	require.NoError(t, users.Create(&u))
	return u
}

func TestLoginSuccessBindsSession(t *testing.T) {
	a, users, sessions := newTestAuthenticator(t)
	created := createUserWithPassword(t, users, "ivanov", "секрет")

	user, err := a.Login("ivanov", "секрет", "777")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	resolved, err := sessions.Resolve("777")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	a, users, sessions := newTestAuthenticator(t)
	createUserWithPassword(t, users, "ivanov", "секрет")

	_, badLogin := a.Login("нет такого", "секрет", "777")
	_, badPassword := a.Login("ivanov", "не тот", "777")

	assert.ErrorIs(t, badLogin, ErrAuthFailed)
	assert.ErrorIs(t, badPassword, ErrAuthFailed)
	assert.Equal(t, badLogin.Error(), badPassword.Error(),
		"неизвестный логин и неверный пароль наружу неразличимы")

	// Неудачная попытка не создаёт сессию
	resolved, err := sessions.Resolve("777")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestLogout(t *testing.T) {
	a, users, _ := newTestAuthenticator(t)
	createUserWithPassword(t, users, "ivanov", "секрет")

	_, err := a.Login("ivanov", "секрет", "777")
	require.NoError(t, err)

	cleared, err := a.Logout("777")
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = a.Logout("777")
	require.NoError(t, err)
	assert.False(t, cleared)
}
