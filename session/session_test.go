package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leonexus/site/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var sessionColumns = []string{"id", "token", "user_id", "username", "email",
	"first_name", "last_name", "role", "created_at", "expires_at"}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	s := NewStore(mockDB)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func TestNewID(t *testing.T) {
	a, err := NewID()
	require.NoError(t, err)
	b, err := NewID()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestCreate(t *testing.T) {
	s, mock := newMockStore(t)
	u := api.User{ID: 7, Username: "jane", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe", Role: api.RoleDealer}

	mock.ExpectExec("INSERT INTO Session").
		WithArgs(sqlmock.AnyArg(), "tok", 7, "jane", "jane@example.com", "Jane", "Doe", "DEALER",
			fixedNow, fixedNow.Add(24*time.Hour)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sess, err := s.Create(context.Background(), "tok", u, 24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, sess.ID, 32)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, u, sess.User)
	assert.Equal(t, fixedNow.Add(24*time.Hour), sess.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM Session WHERE id = ?").
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows(sessionColumns).
			AddRow("abc", "tok", 3, "bob", "bob@example.com", "Bob", "Buyer", "BUYER",
				fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour)))

	sess, err := s.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, 3, sess.User.ID)
	assert.Equal(t, api.RoleBuyer, sess.User.Role)
	assert.True(t, sess.User.IsBuyer())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpired(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM Session WHERE id = ?").
		WithArgs("old").
		WillReturnRows(sqlmock.NewRows(sessionColumns).
			AddRow("old", "tok", 3, "bob", "", "", "", "BUYER",
				fixedNow.Add(-48*time.Hour), fixedNow))

	_, err := s.Get(context.Background(), "old")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM Session WHERE id = ?").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	s, mock := newMockStore(t)
	u := api.User{ID: 3, Username: "bob", FirstName: "Robert", Role: api.RoleBuyer}

	mock.ExpectExec("UPDATE Session").
		WithArgs("bob", "", "Robert", "", "BUYER", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpdateUser(context.Background(), "abc", u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM Session WHERE id = ?").
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpired(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM Session WHERE expires_at <= ?").
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := s.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionExpired(t *testing.T) {
	sess := Session{ExpiresAt: fixedNow}
	assert.True(t, sess.Expired(fixedNow))
	assert.True(t, sess.Expired(fixedNow.Add(time.Second)))
	assert.False(t, sess.Expired(fixedNow.Add(-time.Second)))
}
