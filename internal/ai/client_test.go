package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatHandler(t *testing.T, content string, wantAuth string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if wantAuth != "" {
			assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		}

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		assert.Equal(t, "system", req.Messages[0].Role)

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGenerateGrade(t *testing.T) {
	server := httptest.NewServer(chatHandler(t,
		`{"score": 82, "explanation": "dominant in the air"}`,
		"Bearer test-key"))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")

	grade, err := client.GenerateGrade(context.Background(), domain.MatchReview{
		Goals: 1, MinutesPlayed: 90,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 82, grade.Score)
	assert.Equal(t, "dominant in the air", grade.Explanation)
}

func TestGenerateGrade_RejectsOutOfRangeScore(t *testing.T) {
	server := httptest.NewServer(chatHandler(t, `{"score": 140, "explanation": "x"}`, ""))
	defer server.Close()

	client := NewClient(server.URL, "", "gpt-4o-mini")

	_, err := client.GenerateGrade(context.Background(), domain.MatchReview{}, nil)
	assert.Error(t, err)
}

func TestGenerateGrade_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(chatHandler(t, `not json at all`, ""))
	defer server.Close()

	client := NewClient(server.URL, "", "gpt-4o-mini")

	_, err := client.GenerateGrade(context.Background(), domain.MatchReview{}, nil)
	assert.Error(t, err)
}

func TestGenerateGrade_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "gpt-4o-mini")

	_, err := client.GenerateGrade(context.Background(), domain.MatchReview{}, nil)
	assert.ErrorContains(t, err, "502")
}

func TestGenerateSuggestions(t *testing.T) {
	server := httptest.NewServer(chatHandler(t,
		`{"suggestions": ["shoot earlier", "track runners"]}`, ""))
	defer server.Close()

	client := NewClient(server.URL, "", "gpt-4o-mini")

	got, err := client.GenerateSuggestions(context.Background(),
		"I kept losing my marker", domain.MatchReview{Tackles: 2}, "Sam", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"shoot earlier", "track runners"}, got)
}

func TestPositionLabel(t *testing.T) {
	gk := domain.PositionGK
	st := domain.PositionST

	assert.Equal(t, "outfield player", positionLabel(nil))
	assert.Equal(t, "goalkeeper", positionLabel(&gk))
	assert.Equal(t, "ST", positionLabel(&st))
}
