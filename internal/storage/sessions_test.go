package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedulebot/internal/entity"
)

func TestSessionCreateReplacesPreviousBinding(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	a := createTestUser(t, users, "ivanov", entity.RoleTeacher, "Иванов И.И.", false, false)
	b := createTestUser(t, users, "petrov", entity.RoleTeacher, "Петров П.П.", false, false)

	require.NoError(t, sessions.Create(a.ID, "100500"))
	require.NoError(t, sessions.Create(b.ID, "100500"))

	resolved, err := sessions.Resolve("100500")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, b.ID, resolved.ID, "последняя привязка telegram_id должна побеждать")

	// У одного пользователя может быть несколько сессий с разных telegram_id
	require.NoError(t, sessions.Create(b.ID, "200600"))
	resolved, err = sessions.Resolve("100500")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, b.ID, resolved.ID)
}

func TestSessionResolveUnknown(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepository(db)

	resolved, err := sessions.Resolve("нет такой")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestSessionDeleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	u := createTestUser(t, users, "sidorov", entity.RoleStudent, "9", false, false)
	require.NoError(t, sessions.Create(u.ID, "42"))

	deleted, err := sessions.Delete("42")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = sessions.Delete("42")
	require.NoError(t, err)
	assert.False(t, deleted, "повторное удаление не ошибка и ничего не удаляет")

	resolved, err := sessions.Resolve("42")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
