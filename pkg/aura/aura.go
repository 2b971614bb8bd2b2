package aura

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the Aura reward service. All of its operations are
// best-effort from the composer's point of view: a failed or malformed
// response means "no reward", never a failed submission.
type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseUrl: baseUrl,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type incrementReq struct {
	UserId      string `json:"user_id"`
	Uuid        string `json:"uuid"`
	ContentType string `json:"content_type"`
}

type incrementResp struct {
	Granted bool `json:"granted"`
}

// IncrementPostCount records one post against the user's daily counter,
// keyed by the submission's correlation UUID so retries of the same logical
// post are counted once. Returns whether an Aura reward was granted.
func (c *Client) IncrementPostCount(ctx context.Context, userId, correlationUuid, contentType string) (bool, error) {
	var resp incrementResp
	err := c.post(ctx, "/v0/rewards/posts", incrementReq{
		UserId:      userId,
		Uuid:        correlationUuid,
		ContentType: contentType,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Granted, nil
}

type quotaResp struct {
	Remaining int64 `json:"remaining"`
}

// DailyLimitReached reports whether the user has exhausted today's post
// quota. Supplies the composer's validation precondition.
func (c *Client) DailyLimitReached(ctx context.Context, userId string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+"/v0/rewards/posts/quota?user="+userId, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("aura error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var quota quotaResp
	if err := json.Unmarshal(respBody, &quota); err != nil {
		return false, fmt.Errorf("unmarshal response: %w", err)
	}
	return quota.Remaining <= 0, nil
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("aura error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
