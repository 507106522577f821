package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Error(t *testing.T) {
	cfg := Config{
		Driver:             "invalid",
		ConnectionString:   "invalid",
		MaxOpenConnections: 10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "sql: unknown driver")
}

func TestConnect_PingFails(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("redactor_ping_fails", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	db, err := Connect(context.Background(), Config{Driver: "sqlmock", ConnectionString: "redactor_ping_fails"})

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to ping database")
}

func TestConnect_Success(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("redactor_ping_ok", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	db, err := Connect(context.Background(), Config{
		Driver:             "sqlmock",
		ConnectionString:   "redactor_ping_ok",
		MaxOpenConnections: 2,
		MaxIdleConnections: 1,
		ConnMaxLifetime:    time.Minute,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, db.Stats().MaxOpenConnections)
}

func TestPingCheck(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))

	check := PingCheck(db)
	assert.NoError(t, check(context.Background()))
	assert.Error(t, check(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
