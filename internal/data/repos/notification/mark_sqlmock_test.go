package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestMarkDispatched_GuardedUpdate(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewNotificationRepo(gdb, logger.Nop())
	at := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE "notification" SET "modified_at"=\$1,"modified_by"=\$2 WHERE id = \$3 AND modified_at IS NULL`).
		WithArgs(at, "JOB_SEND_MAILS", int64(41)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "notification" SET .* WHERE id = \$3 AND modified_at IS NULL`).
		WithArgs(at, "JOB_SEND_MAILS", int64(41)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	dbc := dbctx.New(context.Background())
	ok, err := repo.MarkDispatched(dbc, 41, "JOB_SEND_MAILS", at)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.MarkDispatched(dbc, 41, "JOB_SEND_MAILS", at)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}
