package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkt2maker/campustrade/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// testEnv runs the full route table against an in-memory sqlite store.
type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	app := fiber.New()
	RegisterRoutes(app, db, cfg)

	return &testEnv{app: app, db: db, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

// registerUser creates an account through the API and returns its id.
func (e *testEnv) registerUser(t *testing.T, name, email, role string) string {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/users", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	return user["id"].(string)
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/sessions", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["token"].(string)
}

// seller registers a Seller account, logs in and returns (id, token).
func (e *testEnv) seller(t *testing.T, email string) (string, string) {
	t.Helper()
	id := e.registerUser(t, "Seller", email, "Seller")
	return id, e.login(t, email)
}

// buyer registers a Buyer account, logs in and returns (id, token).
func (e *testEnv) buyer(t *testing.T, email string) (string, string) {
	t.Helper()
	id := e.registerUser(t, "Buyer", email, "Buyer")
	return id, e.login(t, email)
}

// createListing creates a listing through the API and returns its decoded
// response body.
func (e *testEnv) createListing(t *testing.T, token string, payload fiber.Map) map[string]interface{} {
	t.Helper()

	if _, ok := payload["title"]; !ok {
		payload["title"] = "Used textbook"
	}
	if _, ok := payload["price"]; !ok {
		payload["price"] = 10.0
	}
	if _, ok := payload["category"]; !ok {
		payload["category"] = "Textbooks"
	}
	if _, ok := payload["condition"]; !ok {
		payload["condition"] = "Good"
	}

	resp, body := e.request(t, http.MethodPost, "/api/listings", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body
}
