package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Alice", "alice@example.com", "Seller")

	resp, body := env.request(t, http.MethodPost, "/api/sessions", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body["token"])
	require.Equal(t, "Login successful", body["message"])

	user := body["user"].(map[string]interface{})
	require.Equal(t, "alice@example.com", user["email"])
	require.NotContains(t, user, "password")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Alice", "alice@example.com", "Seller")

	resp, body := env.request(t, http.MethodPost, "/api/sessions", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "not-the-password",
	})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid email or password", body["error"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.request(t, http.MethodPost, "/api/sessions", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/sessions", "", fiber.Map{
		"email": "alice@example.com",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Email and password are required", body["error"])
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Alice", "alice@example.com", "Seller")
	token := env.login(t, "alice@example.com")

	resp, body := env.request(t, http.MethodDelete, "/api/sessions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body["message"], "Logout successful")

	// Stateless tokens stay valid after logout.
	resp, _ = env.request(t, http.MethodDelete, "/api/sessions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogout_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.request(t, http.MethodDelete, "/api/sessions", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
