package api

import (
	stdsql "database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dandanapp/dandanbot/pkg/database"
)

func TestRootAlwaysOK(t *testing.T) {
	server := NewServer(database.NewClientFromDB(closedDB(t)))

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthUnreachableDatabase(t *testing.T) {
	server := NewServer(database.NewClientFromDB(closedDB(t)))

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unhealthy")
}

// closedDB returns a handle whose pings fail immediately.
func closedDB(t *testing.T) *stdsql.DB {
	t.Helper()
	db, err := stdsql.Open("pgx", "host=localhost port=5432")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	return db
}
