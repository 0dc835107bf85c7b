package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/api/handlers"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/service"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerUser(t *testing.T, ts *testutil.TestServer, role string) handlers.AuthResponse {
	t.Helper()

	var auth handlers.AuthResponse
	resp := doJSON(t, http.MethodPost, ts.APIURL("/auth/register"), "", map[string]string{
		"email":    fmt.Sprintf("%s_%s@test.local", role, uuid.New().String()[:8]),
		"password": "password1234",
		"name":     "Test " + role,
		"role":     role,
	}, &auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, auth.AccessToken)
	return auth
}

func TestGrowthEndpoints(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ts := testutil.NewTestServer(t)
	coach := registerUser(t, ts, "coach")

	// Coach sets up a team with one player and one match through the API.
	var team domain.Team
	resp := doJSON(t, http.MethodPost, ts.APIURL("/teams"), coach.AccessToken,
		map[string]string{"name": "Northside U16"}, &team)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var player domain.Player
	resp = doJSON(t, http.MethodPost, ts.APIURL("/teams/"+team.ID.String()+"/players"), coach.AccessToken,
		map[string]interface{}{"name": "Alex Mensah", "position": "ST"}, &player)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var match domain.Match
	resp = doJSON(t, http.MethodPost, ts.APIURL("/teams/"+team.ID.String()+"/matches"), coach.AccessToken,
		map[string]interface{}{"opponent": "Riverside", "matchDate": time.Now().Format(time.RFC3339)}, &match)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1), match.Sequence)

	playerPath := "/players/" + player.ID.String()

	t.Run("new player starts at the default attributes", func(t *testing.T) {
		var attrs domain.AttributeSet
		resp := doJSON(t, http.MethodGet, ts.APIURL(playerPath+"/attributes"), coach.AccessToken, nil, &attrs)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 50, attrs.OverallRating)
	})

	t.Run("submitting stats moves attributes and extends history", func(t *testing.T) {
		var result service.GrowthResult
		resp := doJSON(t, http.MethodPost, ts.APIURL(playerPath+"/matches/"+match.ID.String()+"/stats"),
			coach.AccessToken,
			map[string]interface{}{"goals": 2, "minutesPlayed": 90, "coachRating": 70},
			&result)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 52, result.FinalAttributes.Shooting)
		assert.Equal(t, 2, result.Growth["shooting"])

		var attrs domain.AttributeSet
		resp = doJSON(t, http.MethodGet, ts.APIURL(playerPath+"/attributes"), coach.AccessToken, nil, &attrs)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, result.FinalAttributes, attrs)

		var history []handlers.SnapshotResponse
		resp = doJSON(t, http.MethodGet, ts.APIURL(playerPath+"/growth"), coach.AccessToken, nil, &history)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, history, 2)
		assert.Nil(t, history[0].MatchID)
		require.NotNil(t, history[1].MatchID)
		assert.Equal(t, match.ID.String(), *history[1].MatchID)
		assert.Equal(t, result.FinalAttributes, history[1].Attributes)
	})

	t.Run("invalid stat line is a 400", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL(playerPath+"/matches/"+match.ID.String()+"/stats"),
			coach.AccessToken,
			map[string]interface{}{"goals": -1}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown player is a 404", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost,
			ts.APIURL("/players/"+uuid.New().String()+"/matches/"+match.ID.String()+"/stats"),
			coach.AccessToken,
			map[string]interface{}{"minutesPlayed": 90}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("player accounts cannot submit stats", func(t *testing.T) {
		playerUser := registerUser(t, ts, "player")
		resp := doJSON(t, http.MethodPost, ts.APIURL(playerPath+"/matches/"+match.ID.String()+"/stats"),
			playerUser.AccessToken,
			map[string]interface{}{"minutesPlayed": 90}, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("player accounts can read attributes", func(t *testing.T) {
		playerUser := registerUser(t, ts, "player")
		resp := doJSON(t, http.MethodGet, ts.APIURL(playerPath+"/attributes"), playerUser.AccessToken, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL(playerPath+"/attributes"), "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
