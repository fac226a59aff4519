package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/logging"
)

// HTTPClient talks to the remote game backend. It implements Provider and Scorer.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	token   string
	logger  logging.Logger
}

// NewHTTPClient creates a client for the backend at baseURL
func NewHTTPClient(baseURL string, timeout time.Duration, token string) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		token:   token,
		logger:  logging.NewLogger("content-http"),
	}
}

// scoreRequest is the body of a score submission
type scoreRequest struct {
	GameID   int `json:"gameId"`
	PlayerID int `json:"playerId"`
	Score    int `json:"score"`
}

// FetchMaze implements Provider: GET {base}/games/{gameId}/levels/{level}
func (c *HTTPClient) FetchMaze(ctx context.Context, gameID int, level string) (*Envelope, error) {
	u := fmt.Sprintf("%s/games/%d/levels/%s", c.baseURL, gameID, url.PathEscape(NormalizeLevel(level)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build maze request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch maze: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("game %d level %s: %w", gameID, level, ErrNotFound)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("failed to fetch maze: %s", statusError(resp))
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	c.logger.Debugf("fetched game %d level %s (%d items)", gameID, level, len(env.Content))
	return &env, nil
}

// SubmitScore implements Scorer: POST {base}/scores
func (c *HTTPClient) SubmitScore(ctx context.Context, gameID, playerID, score int) error {
	body, err := json.Marshal(scoreRequest{GameID: gameID, PlayerID: playerID, Score: score})
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("failed to submit score: %s", statusError(resp))
	}
	c.logger.Infof("submitted score %d for game %d player %d", score, gameID, playerID)
	return nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func statusError(resp *http.Response) string {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	msg := strings.TrimSpace(string(snippet))
	if msg == "" {
		return "status " + strconv.Itoa(resp.StatusCode)
	}
	return "status " + strconv.Itoa(resp.StatusCode) + ": " + msg
}
