package engagement

import "errors"

var (
	ErrSignInRequired = errors.New("sign in required")
	ErrEmptyComment   = errors.New("comment text is empty")
	ErrLikeFailed     = errors.New("like failed")
	ErrRetweetFailed  = errors.New("retweet failed")
	ErrBookmarkFailed = errors.New("bookmark failed")
	ErrCommentFailed  = errors.New("comment failed")
)
