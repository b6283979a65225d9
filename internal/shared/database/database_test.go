package database

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_DisabledStores(t *testing.T) {
	db := &DB{}

	health := db.Health(context.Background())
	assert.Equal(t, "disabled", health["postgres"].Status)
	assert.Equal(t, "disabled", health["redis"].Status)
	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.NoError(t, db.Close())
}

func TestHealth_Redis(t *testing.T) {
	client, mock := redismock.NewClientMock()
	db := &DB{Redis: client}

	mock.ExpectPing().SetVal("PONG")
	health := db.Health(context.Background())
	assert.Equal(t, "up", health["redis"].Status)
	assert.NotEmpty(t, health["redis"].Latency)

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	mock.ExpectPing().SetErr(errors.New("connection refused"))
	health = db.Health(context.Background())
	assert.Equal(t, "down", health["redis"].Status)
	assert.Equal(t, "connection refused", health["redis"].Error)

	err := db.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
	require.NoError(t, mock.ExpectationsWereMet())
}
