package db

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model"
	"skynow-api/pkg/redis"
)

var (
	london = entity.CitySearchResult{Name: "London", Lat: 51.5074, Lon: -0.1278, Country: "GB"}
	paris  = entity.CitySearchResult{Name: "Paris", Lat: 48.8566, Lon: 2.3522, Country: "FR", State: "Ile-de-France"}
)

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client := redis.NewClient(redis.NewRedisConfig().WithHost(server.Host()).WithPort(port))
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func testHistoryRoundTrip(t *testing.T, gateway HistoryGateway) {
	ctx := context.Background()

	empty, err := gateway.Load(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, gateway.Save(ctx, "alice", []entity.CitySearchResult{paris, london}))

	cities, err := gateway.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []entity.CitySearchResult{paris, london}, cities)

	others, err := gateway.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, gateway.Save(ctx, "alice", []entity.CitySearchResult{london}))
	cities, err = gateway.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []entity.CitySearchResult{london}, cities)
}

func TestMemoryHistoryGateway(t *testing.T) {
	testHistoryRoundTrip(t, NewMemoryHistoryGateway())
}

func TestRedisHistoryGateway(t *testing.T) {
	client, server := newRedis(t)
	testHistoryRoundTrip(t, NewRedisHistoryGateway(client))

	stored, err := server.Get("skynow_history:alice")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"London","lat":51.5074,"lon":-0.1278,"country":"GB"}]`, stored)
}

func TestRedisHistoryGatewayDiscardsUnreadableValue(t *testing.T) {
	client, server := newRedis(t)
	require.NoError(t, server.Set("skynow_history:alice", "{not json"))

	cities, err := NewRedisHistoryGateway(client).Load(context.Background(), "alice")

	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestGormHistoryGatewayLoad(t *testing.T) {
	gormDB, mock := newMockGorm(t)
	rows := sqlmock.NewRows([]string{"client_id", "position", "name", "lat", "lon", "country", "state"}).
		AddRow("alice", 0, paris.Name, paris.Lat, paris.Lon, paris.Country, paris.State).
		AddRow("alice", 1, london.Name, london.Lat, london.Lon, london.Country, london.State)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "recent_cities" WHERE client_id = $1 ORDER BY position`)).
		WithArgs("alice").
		WillReturnRows(rows)

	cities, err := NewGormHistoryGateway(gormDB).Load(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, []entity.CitySearchResult{paris, london}, cities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormHistoryGatewaySave(t *testing.T) {
	gormDB, mock := newMockGorm(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "recent_cities" WHERE client_id = $1`)).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "recent_cities"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := NewGormHistoryGateway(gormDB).Save(context.Background(), "alice", []entity.CitySearchResult{paris, london})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormHistoryGatewaySaveRollsBack(t *testing.T) {
	gormDB, mock := newMockGorm(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "recent_cities"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewGormHistoryGateway(gormDB).Save(context.Background(), "alice", []entity.CitySearchResult{london})

	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthGateways(t *testing.T) {
	client, server := newRedis(t)
	redisHealth := NewRedisHealthDBGateway(client)

	status := redisHealth.Health(context.Background())
	assert.Equal(t, model.StatusUp, status.Status)
	assert.Equal(t, "redis", status.Details["backend"])

	server.Close()
	assert.Equal(t, model.StatusDown, redisHealth.Health(context.Background()).Status)

	assert.Equal(t, model.StatusUp, NewStaticHealthDBGateway("memory").Health(context.Background()).Status)

	gormDB, _ := newMockGorm(t)
	assert.Equal(t, model.StatusUp, NewGormHealthDBGateway(gormDB).Health(context.Background()).Status)
}
