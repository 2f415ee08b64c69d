package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/shop-api/internal/api"
	"github.com/phrazzld/shop-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

// stubMigrator records Up calls and returns err.
type stubMigrator struct {
	err   error
	calls int
}

func (m *stubMigrator) Up(ctx context.Context) error {
	m.calls++
	return m.err
}

// testAPI holds the mocked services behind a router built by api.NewRouter.
type testAPI struct {
	users    *mocks.MockUserService
	products *mocks.MockProductService
	orders   *mocks.MockOrderService
	migrator *stubMigrator
	handler  http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ta := &testAPI{
		users:    &mocks.MockUserService{},
		products: &mocks.MockProductService{},
		orders:   &mocks.MockOrderService{},
		migrator: &stubMigrator{},
	}
	ta.handler = api.NewRouter(api.Handlers{
		Index:    api.NewIndexHandler(ta.migrator, logger),
		Users:    api.NewUserHandler(ta.users, logger),
		Products: api.NewProductHandler(ta.products, logger),
		Orders:   api.NewOrderHandler(ta.orders, logger),
	}, logger)
	return ta
}

func (ta *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	return rr
}

// errorBody covers both error shapes.
type errorBody struct {
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
	TraceID string              `json:"trace_id"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
