package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Wallet is the precondition consulted before attempting a mint. The mint
// sub-step is skipped entirely when no wallet is connected.
type Wallet interface {
	Connected() bool
	Connect(ctx context.Context) error
}

// Client talks to the mint relay that puts new posts on chain. Minting is
// always best-effort: a failed mint never rolls back the created post.
type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseUrl: baseUrl,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// MintReq carries everything the relay needs to mint a post token. Uuid is
// the submission's correlation key; the relay rejects duplicate mints for
// the same key with an "already exists" error.
type MintReq struct {
	Uuid       string `json:"uuid"`
	Content    string `json:"content"`
	MediaUrl   string `json:"media_url,omitempty"`
	PriceParam string `json:"price_param,omitempty"`
	AuthUserId string `json:"auth_user_id"`
	SponsorGas bool   `json:"sponsor_gas"`
}

type mintResp struct {
	TransactionHash string `json:"transaction_hash"`
}

func (c *Client) CreatePostToken(ctx context.Context, req MintReq) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+"/v0/tokens/posts", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", ClassifyMintError(fmt.Errorf("mint error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var result mintResp
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return result.TransactionHash, nil
}
