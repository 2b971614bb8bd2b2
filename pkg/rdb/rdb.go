package rdb

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func Init(uri string) error {
	// Get Redis options
	rdbOpts, err := redis.ParseURL(uri)
	if err != nil {
		return err
	}

	// Create Redis client
	Client = redis.NewClient(rdbOpts)

	// Ping Redis
	if err := Client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	return nil
}

// UserChannel is the pub/sub channel carrying packets destined for a single
// user's sessions (toasts, engagement deltas).
func UserChannel(userId string) string {
	return "u" + userId
}

// PostChannel is the pub/sub channel carrying packets about a single post.
func PostChannel(postId string) string {
	return "p" + postId
}
