package accountrepo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepoPGS(db)

	createdAt := time.Now()

	mock.ExpectQuery(`INSERT INTO\s+accounts \(id, name\)`).
		WithArgs(sqlmock.AnyArg(), "Checking").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(uuid.NewString(), "Checking", createdAt))

	got, err := repo.Create(context.Background(), "Checking")
	require.NoError(t, err)
	require.Equal(t, "Checking", got.Name)
	require.NotEmpty(t, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepoPGS(db)

	id := uuid.NewString()

	t.Run("OK", func(t *testing.T) {
		mock.ExpectQuery(`FROM accounts\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
				AddRow(id, "Checking", time.Now()))

		got, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, id, got.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM accounts\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), id)
		require.EqualError(t, err, domain.ErrAccountNotFound.Error())
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOwnership(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepoPGS(db)

	userID := uuid.NewString()
	accountID := uuid.NewString()

	t.Run("OK", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO\s+accounts_ownerships`).
			WithArgs(userID, accountID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "account_id"}).
				AddRow(int64(1), userID, accountID))

		got, err := repo.CreateOwnership(context.Background(), userID, accountID)
		require.NoError(t, err)
		require.Equal(t, userID, got.UserID)
		require.Equal(t, accountID, got.AccountID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO\s+accounts_ownerships`).
			WithArgs(userID, accountID).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_ownerships_user_id_account_id_key"})

		_, err := repo.CreateOwnership(context.Background(), userID, accountID)
		require.EqualError(t, err, domain.ErrOwnershipAlreadyExists.Error())
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO\s+accounts_ownerships`).
			WithArgs(userID, accountID).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "accounts_ownerships_user_id_fkey"})

		_, err := repo.CreateOwnership(context.Background(), userID, accountID)
		require.EqualError(t, err, domain.ErrUserNotFound.Error())
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOwnerships(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepoPGS(db)

	userID := uuid.NewString()
	accountID := uuid.NewString()

	mock.ExpectQuery(`FROM accounts_ownerships\s+WHERE account_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "account_id"}).
			AddRow(int64(1), userID, accountID))

	got, err := repo.ListOwnerships(context.Background(), []string{accountID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, accountID, got[0].AccountID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOwned(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepoPGS(db)

	userID := uuid.NewString()

	t.Run("OK", func(t *testing.T) {
		mock.ExpectQuery(`JOIN accounts_ownerships o ON o.account_id = a.id\s+WHERE o.user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
				AddRow(uuid.NewString(), "Checking", time.Now()).
				AddRow(uuid.NewString(), "Savings", time.Now()))

		got, err := repo.ListOwned(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery(`JOIN accounts_ownerships o ON o.account_id = a.id\s+WHERE o.user_id = \$1`).
			WithArgs(userID).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.ListOwned(context.Background(), userID)
		require.EqualError(t, err, errorspkg.ErrInternal.Error())
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
