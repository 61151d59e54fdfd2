package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/room"
	"github.com/stretchr/testify/require"
)

func TestGetItem(t *testing.T) {
	env := newTestEnv(t, false)
	item := env.createItem(t, "100", "10")
	
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/items/%d", item.ID), nil)
	env.server.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "110.00", body["minimum_bid"])
	require.Nil(t, body["last_bid"])
	require.Nil(t, body["auction_result"])
	
	arbiter := bidding.NewArbiter(env.store, 0)
	_, err := arbiter.PlaceBid(context.Background(), item.ID, bidding.Bidder{ID: "alice", Name: "Alice"}, "120")
	require.NoError(t, err)
	
	recorder = httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/items/%d", item.ID), nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	
	body = nil
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, false, body["is_active"])
	require.Nil(t, body["minimum_bid"])
	require.Equal(t, "120.00", body["last_bid"].(map[string]any)["amount"])
	require.Equal(t, "alice", body["auction_result"].(map[string]any)["winner_id"])
}

func TestGetItemErrors(t *testing.T) {
	env := newTestEnv(t, false)
	
	testCases := []struct {
		path string
		want int
	}{
		{path: "/v1/items/abc", want: http.StatusBadRequest},
		{path: "/v1/items/0", want: http.StatusBadRequest},
		{path: "/v1/items/42", want: http.StatusNotFound},
		{path: "/v1/items/42/stream", want: http.StatusNotFound},
	}
	
	for _, tc := range testCases {
		recorder := httptest.NewRecorder()
		env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.Equal(t, tc.want, recorder.Code, tc.path)
	}
}

func TestListItemBidsAndRoom(t *testing.T) {
	env := newTestEnv(t, false)
	item := env.createItem(t, "100", "10")
	
	recorder := httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/items/%d/bids", item.ID), nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, "[]", recorder.Body.String())
	
	recorder = httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/items/%d/room", item.ID), nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, fmt.Sprintf(`{"item_id": %d, "members": 0, "bidders": 0, "spectators": 0}`, item.ID), recorder.Body.String())
}

func TestGetItemRoomCountsSpectatorsApart(t *testing.T) {
	env := newTestEnv(t, false)
	item := env.createItem(t, "100", "10")
	
	env.dial(t, fmt.Sprint(item.ID), "alice", "Alice")
	env.waitMembers(t, item.ID, 1)
	
	spectator := room.NewMember("watcher", "", "", 8)
	spectator.Spectator = true
	membership := env.server.hub.Join(item.ID, spectator)
	defer membership.Leave()
	
	recorder := httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/items/%d/room", item.ID), nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, fmt.Sprintf(`{"item_id": %d, "members": 2, "bidders": 1, "spectators": 1}`, item.ID), recorder.Body.String())
}

func TestDevRoutesOnlyInDevelopment(t *testing.T) {
	env := newTestEnv(t, false)
	
	body := bytes.NewBufferString(`{"title": "Lamp", "start_price": "10", "min_increment": "1"}`)
	recorder := httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/dev/items", body))
	require.Equal(t, http.StatusNotFound, recorder.Code)
	
	env.server.config.Environment = "development"
	env.server.setupRouter()
	
	body = bytes.NewBufferString(`{"title": "Lamp", "start_price": "10", "min_increment": "0"}`)
	recorder = httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/dev/items", body))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	
	body = bytes.NewBufferString(`{"title": "Lamp", "start_price": "10", "min_increment": "1.5"}`)
	recorder = httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/dev/items", body))
	require.Equal(t, http.StatusCreated, recorder.Code)
	
	body = bytes.NewBufferString(`{"user_id": "alice", "name": "Alice"}`)
	recorder = httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/dev/tokens", body))
	require.Equal(t, http.StatusCreated, recorder.Code)
	
	var resp map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	payload, err := env.server.tokenMaker.VerifyToken(resp["access_token"].(string))
	require.NoError(t, err)
	require.Equal(t, "alice", payload.Subject)
	require.Equal(t, "Alice", payload.Name)
}
