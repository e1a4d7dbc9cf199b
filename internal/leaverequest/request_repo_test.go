package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-lms/internal/leaverequest"
)

// Writes issued through WithTx must hit the caller's transaction, not the
// pool the repository was built on. The pool mock carries no expectations,
// so any statement escaping the transaction fails the call.
func TestRepositoryWithTxRoutesWrites(t *testing.T) {
	newRepo := func(t *testing.T) leaverequest.Repository {
		t.Helper()
		poolDB, _, err := sqlmock.New()
		assert.NoError(t, err)
		t.Cleanup(func() { poolDB.Close() })
		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{SkipDefaultTransaction: true})
		assert.NoError(t, err)
		return leaverequest.NewRepository(gormDB)
	}

	t.Run("update commits with the transaction", func(t *testing.T) {
		repo := newRepo(t)

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)
		qtx := repo.WithTx(tx)

		req := &leaverequest.LeaveRequest{
			ID:            uuid.New(),
			RequestNumber: "REQ-000001",
			Kind:          leaverequest.KindStandard,
			RequesterID:   uuid.New(),
			FromDate:      time.Now(),
			ToDate:        time.Now().AddDate(0, 0, 1),
			Reason:        "medical",
			Status:        leaverequest.StatusApproved,
		}

		txMock.ExpectExec(`UPDATE "leave_requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, qtx.Update(context.Background(), req))

		txMock.ExpectCommit()
		assert.NoError(t, tx.Commit())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})

	t.Run("delete commits with the transaction", func(t *testing.T) {
		repo := newRepo(t)

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)
		qtx := repo.WithTx(tx)

		id := uuid.New().String()
		txMock.ExpectExec(`DELETE FROM "leave_requests"`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := qtx.Delete(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		txMock.ExpectCommit()
		assert.NoError(t, tx.Commit())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})
}
