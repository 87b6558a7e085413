package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCreateThread(t *testing.T) {
	env := newTestEnv(t)
	sellerID, sellerToken := env.seller(t, "seller@example.com")
	buyerID, buyerToken := env.buyer(t, "buyer@example.com")
	listingID := env.createListing(t, sellerToken, fiber.Map{})["id"].(string)

	resp, body := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", buyerToken, fiber.Map{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, buyerID, body["buyer_id"])
	require.Equal(t, sellerID, body["seller_id"])
	require.Equal(t, listingID, body["listing_id"])
}

func TestCreateThread_DuplicateReturnsExisting(t *testing.T) {
	env := newTestEnv(t)
	_, sellerToken := env.seller(t, "seller@example.com")
	_, buyerToken := env.buyer(t, "buyer@example.com")
	listingID := env.createListing(t, sellerToken, fiber.Map{})["id"].(string)

	resp, first := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", buyerToken, fiber.Map{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", buyerToken, fiber.Map{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Thread already exists", body["error"])

	existing := body["thread"].(map[string]interface{})
	require.Equal(t, first["id"], existing["id"])
}

func TestCreateThread_RoleGate(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"Buyer", http.StatusCreated},
		{"Both", http.StatusCreated},
		{"Seller", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			env := newTestEnv(t)
			_, sellerToken := env.seller(t, "seller@example.com")
			listingID := env.createListing(t, sellerToken, fiber.Map{})["id"].(string)

			env.registerUser(t, "User", "user@example.com", tt.role)
			token := env.login(t, "user@example.com")

			resp, _ := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", token, fiber.Map{})
			require.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestListThreadsForListing_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	_, sellerToken := env.seller(t, "seller@example.com")
	_, buyerToken := env.buyer(t, "buyer@example.com")
	listingID := env.createListing(t, sellerToken, fiber.Map{})["id"].(string)

	resp, _ := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", buyerToken, fiber.Map{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.request(t, http.MethodGet, "/api/listings/"+listingID+"/threads", sellerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["threads"].([]interface{}), 1)

	resp, body = env.request(t, http.MethodGet, "/api/listings/"+listingID+"/threads", buyerToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Only the listing owner can view these threads", body["error"])
}

func TestGetThread_ParticipantsOnly(t *testing.T) {
	env := newTestEnv(t)
	_, sellerToken := env.seller(t, "seller@example.com")
	_, buyerToken := env.buyer(t, "buyer@example.com")
	env.registerUser(t, "Outsider", "outsider@example.com", "Buyer")
	outsiderToken := env.login(t, "outsider@example.com")

	listingID := env.createListing(t, sellerToken, fiber.Map{})["id"].(string)
	_, thread := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", buyerToken, fiber.Map{})
	threadID := thread["id"].(string)

	path := "/api/listings/" + listingID + "/threads/" + threadID
	for _, token := range []string{buyerToken, sellerToken} {
		resp, _ := env.request(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, _ := env.request(t, http.MethodGet, path, outsiderToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Same rules on the standalone route.
	resp, _ = env.request(t, http.MethodGet, "/api/threads/"+threadID, buyerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.request(t, http.MethodGet, "/api/threads/"+threadID, outsiderToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateThread_BumpsLastActivity(t *testing.T) {
	env := newTestEnv(t)
	_, sellerToken := env.seller(t, "seller@example.com")
	_, buyerToken := env.buyer(t, "buyer@example.com")

	listingID := env.createListing(t, sellerToken, fiber.Map{})["id"].(string)
	_, thread := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", buyerToken, fiber.Map{})
	threadID := thread["id"].(string)
	before := thread["last_activity_time"].(string)

	resp, body := env.request(t, http.MethodPatch, "/api/listings/"+listingID+"/threads/"+threadID, buyerToken, fiber.Map{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	beforeTime, err := time.Parse(time.RFC3339Nano, before)
	require.NoError(t, err)
	afterTime, err := time.Parse(time.RFC3339Nano, body["last_activity_time"].(string))
	require.NoError(t, err)
	require.True(t, afterTime.After(beforeTime))
}

func TestMyThreads(t *testing.T) {
	env := newTestEnv(t)
	_, sellerToken := env.seller(t, "seller@example.com")
	_, buyerToken := env.buyer(t, "buyer@example.com")
	env.registerUser(t, "Other", "other@example.com", "Buyer")
	otherToken := env.login(t, "other@example.com")

	listingID := env.createListing(t, sellerToken, fiber.Map{})["id"].(string)
	resp, _ := env.request(t, http.MethodPost, "/api/listings/"+listingID+"/threads", buyerToken, fiber.Map{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The buyer and the seller each see the thread; an uninvolved user does
	// not.
	for _, token := range []string{buyerToken, sellerToken} {
		resp, body := env.request(t, http.MethodGet, "/api/threads", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, body["threads"].([]interface{}), 1)
		require.Equal(t, 1.0, body["total"])
		require.Equal(t, 1.0, body["total_pages"])
	}

	resp, body := env.request(t, http.MethodGet, "/api/threads", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, body["threads"])
	require.Equal(t, 0.0, body["total"])
}

func TestMyThreads_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.request(t, http.MethodGet, "/api/threads", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetThread_UnknownListing(t *testing.T) {
	env := newTestEnv(t)
	_, buyerToken := env.buyer(t, "buyer@example.com")

	resp, body := env.request(t, http.MethodGet, "/api/listings/missing/threads/also-missing", buyerToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Listing or Thread not found", body["error"])
}
