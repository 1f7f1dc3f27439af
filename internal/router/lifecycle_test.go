package router

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomer-portal/internal/platform/config"
)

// sin ping: sql.Open no conecta, alcanza para ver si el router cierra la DB.
func unreachableDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func pingErr(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func stubOpenPostgres(t *testing.T, db *sql.DB) {
	t.Helper()
	prev := openPostgres
	openPostgres = func(context.Context, string) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { openPostgres = prev })
}

func TestNewRouter_ClosesOwnedDBOnLaterFailure(t *testing.T) {
	db := unreachableDB(t)
	stubOpenPostgres(t, db)

	cfg := config.Default()
	cfg.DBDSN = "postgres://example"
	cfg.BaaSURL = "http://baas.test" // sin JWT_SECRET => selectAuth falla

	_, closeFn, err := NewRouter(Options{Config: cfg})
	require.Error(t, err)
	assert.Nil(t, closeFn)

	err = pingErr(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is closed")
}

func TestNewRouter_CloseReleasesOwnedDB(t *testing.T) {
	db := unreachableDB(t)
	stubOpenPostgres(t, db)

	cfg := config.Default()
	cfg.DBDSN = "postgres://example"

	_, closeFn, err := NewRouter(Options{Config: cfg})
	require.NoError(t, err)
	require.NoError(t, closeFn())

	err = pingErr(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is closed")
}

func TestNewRouter_LeavesInjectedDBOpen(t *testing.T) {
	db := unreachableDB(t)

	_, closeFn, err := NewRouter(Options{Config: config.Default(), DB: db})
	require.NoError(t, err)
	require.NoError(t, closeFn())

	err = pingErr(db)
	require.Error(t, err, "nothing listens on port 1")
	assert.NotContains(t, err.Error(), "database is closed")
}
