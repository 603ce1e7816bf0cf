package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router http.Handler
	db     database.Database
}

// newTestEnv wires the real router over an in-memory database. mutate can
// swap collaborators before the router is built.
func newTestEnv(t *testing.T, cfg map[string]string, mutate func(*Dependencies)) *testEnv {
	t.Helper()

	conn := database.NewConnection(database.ConnectionConfig{
		Dialector:    sqlite.Open(":memory:"),
		LogLevel:     logger.Silent,
		MaxOpenConns: 1,
	})
	gormDB, err := conn.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gormDB))
	t.Cleanup(func() { _ = conn.Close() })

	db := database.New(gormDB)
	deps := Dependencies{
		Database:   db,
		Aggregator: services.NewAggregator(db),
		Prompt:     services.PromptOptions{OwnerName: "Prashant"},
	}
	if mutate != nil {
		mutate(&deps)
	}

	return &testEnv{
		router: newRouter(deps, withConfig(cfg), withStartupTime(time.Now())),
		db:     db,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
