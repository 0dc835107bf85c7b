// Package ai wraps an OpenAI-compatible chat-completions endpoint behind
// the small surface the growth pipeline needs. Every call is best-effort:
// callers are expected to log and continue on error.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
)

// Grade is the AI's judgment of one stat line.
type Grade struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Client generates match grades and training suggestions.
type Client interface {
	GenerateGrade(ctx context.Context, stats domain.MatchReview, pos *domain.Position) (*Grade, error)
	GenerateSuggestions(ctx context.Context, feedback string, stats domain.MatchReview, playerName string, pos *domain.Position) ([]string, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewClient(baseURL, apiKey, model string) *httpClient {
	return &httpClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *httpClient) GenerateGrade(ctx context.Context, stats domain.MatchReview, pos *domain.Position) (*Grade, error) {
	prompt := fmt.Sprintf(
		"Grade this %s performance from 0 to 100 and explain briefly. "+
			"Stats: goals=%d assists=%d saves=%d tackles=%d interceptions=%d "+
			"chances_created=%d minutes=%d. "+
			`Respond as JSON: {"score": <int>, "explanation": "<text>"}`,
		positionLabel(pos),
		stats.Goals, stats.Assists, stats.Saves, stats.Tackles,
		stats.Interceptions, stats.ChancesCreated, stats.MinutesPlayed,
	)

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var grade Grade
	if err := json.Unmarshal([]byte(content), &grade); err != nil {
		return nil, fmt.Errorf("failed to parse grade response: %w", err)
	}
	if grade.Score < 0 || grade.Score > 100 {
		return nil, fmt.Errorf("grade score out of range: %d", grade.Score)
	}
	return &grade, nil
}

func (c *httpClient) GenerateSuggestions(ctx context.Context, feedback string, stats domain.MatchReview, playerName string, pos *domain.Position) ([]string, error) {
	prompt := fmt.Sprintf(
		"Player %s (%s) reflected on their match: %q. "+
			"Their stats: goals=%d assists=%d tackles=%d interceptions=%d minutes=%d. "+
			"Give up to three short training suggestions. "+
			`Respond as JSON: {"suggestions": ["<text>", ...]}`,
		playerName, positionLabel(pos), feedback,
		stats.Goals, stats.Assists, stats.Tackles, stats.Interceptions, stats.MinutesPlayed,
	)

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions response: %w", err)
	}
	return parsed.Suggestions, nil
}

func (c *httpClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a youth football coaching assistant. Respond with JSON only."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai endpoint returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode ai response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("ai response contained no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func positionLabel(pos *domain.Position) string {
	if pos == nil {
		return "outfield player"
	}
	if pos.IsGoalkeeper() {
		return "goalkeeper"
	}
	return pos.String()
}
