package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clapo-social/client-core/pkg/structs"
)

const DefaultTimeout = 15 * time.Second

// Client talks to the upstream Clapo REST API. Every call either succeeds
// with a typed payload or fails; callers treat any failure uniformly as
// "operation failed, roll back".
type Client struct {
	baseUrl    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Clapo API client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(baseUrl, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseUrl: baseUrl,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type engagementReq struct {
	UserId string `json:"user_id"`
}

func (c *Client) LikePost(ctx context.Context, postId, userId string) error {
	return c.post(ctx, "/v0/posts/"+postId+"/like", engagementReq{UserId: userId}, nil)
}

func (c *Client) UnlikePost(ctx context.Context, postId, userId string) error {
	return c.post(ctx, "/v0/posts/"+postId+"/unlike", engagementReq{UserId: userId}, nil)
}

func (c *Client) RetweetPost(ctx context.Context, postId, userId string) error {
	return c.post(ctx, "/v0/posts/"+postId+"/retweet", engagementReq{UserId: userId}, nil)
}

func (c *Client) BookmarkPost(ctx context.Context, postId, userId string) error {
	return c.post(ctx, "/v0/posts/"+postId+"/bookmark", engagementReq{UserId: userId}, nil)
}

func (c *Client) UnbookmarkPost(ctx context.Context, postId, userId string) error {
	return c.post(ctx, "/v0/posts/"+postId+"/unbookmark", engagementReq{UserId: userId}, nil)
}

type addCommentReq struct {
	UserId  string `json:"user_id"`
	Content string `json:"content"`
}

func (c *Client) AddComment(ctx context.Context, postId, userId, content string) (structs.V0Comment, error) {
	var comment structs.V0Comment
	err := c.post(ctx, "/v0/posts/"+postId+"/comments", addCommentReq{
		UserId:  userId,
		Content: content,
	}, &comment)
	return comment, err
}

// CreatePostReq carries the draft plus its correlation UUID, so the backend
// can dedupe retries of the same logical post.
type CreatePostReq struct {
	UserId   string `json:"user_id"`
	Content  string `json:"content"`
	MediaUrl string `json:"media_url,omitempty"`
	Uuid     string `json:"uuid"`
}

func (c *Client) CreatePost(ctx context.Context, req CreatePostReq) (structs.V0Post, error) {
	var post structs.V0Post
	err := c.post(ctx, "/v0/posts", req, &post)
	return post, err
}

// GetPost fetches a post with counts and the requester's membership flags,
// used to seed gateway state.
func (c *Client) GetPost(ctx context.Context, postId, userId string) (structs.V0Post, error) {
	var post structs.V0Post
	path := "/v0/posts/" + postId
	if userId != "" {
		path += "?requester=" + userId
	}
	err := c.get(ctx, path, &post)
	return post, err
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

	return c.do(req, result)
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

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
		return fmt.Errorf("%w (status %d): %s", ErrApi, resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
