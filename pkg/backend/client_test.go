package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clapo-social/client-core/pkg/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePost(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody engagementReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok123", 0)
	err := c.LikePost(context.Background(), "p1", "u1")

	require.NoError(t, err)
	assert.Equal(t, "/v0/posts/p1/like", gotPath)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "u1", gotBody.UserId)
}

func TestCreatePost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostReq
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(structs.V0Post{
			Id:      "p42",
			Content: req.Content,
			Uuid:    req.Uuid,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	post, err := c.CreatePost(context.Background(), CreatePostReq{
		UserId:  "u1",
		Content: "hello",
		Uuid:    "abc-123",
	})

	require.NoError(t, err)
	assert.Equal(t, "p42", post.Id)
	assert.Equal(t, "abc-123", post.Uuid)
}

func TestNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":true}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	err := c.RetweetPost(context.Background(), "p1", "u1")

	assert.True(t, errors.Is(err, ErrApi))
}
