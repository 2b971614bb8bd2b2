package events

import (
	"github.com/clapo-social/client-core/pkg/engagement"
	"github.com/clapo-social/client-core/pkg/utils"
)

// RemoteEvent is one engagement change pushed by the upstream stream:
// another user or device liked, retweeted, bookmarked or commented on a
// post this gateway may be tracking.
type RemoteEvent struct {
	Op     string `json:"op" msgpack:"op"`
	PostId string `json:"post_id" msgpack:"post_id"`
	UserId string `json:"user_id,omitempty" msgpack:"user_id,omitempty"`
}

const (
	OpLikeAdd        = "like_add"
	OpLikeRemove     = "like_remove"
	OpRetweetAdd     = "retweet_add"
	OpBookmarkAdd    = "bookmark_add"
	OpBookmarkRemove = "bookmark_remove"
	OpCommentAdd     = "comment_add"
)

// delta resolves an event into the count it adjusts and by how much.
// Unknown ops return ok=false and are dropped.
func (e *RemoteEvent) delta() (kind engagement.RemoteDeltaKind, delta int64, ok bool) {
	switch e.Op {
	case OpLikeAdd:
		return engagement.RemoteLikes, 1, true
	case OpLikeRemove:
		return engagement.RemoteLikes, -1, true
	case OpRetweetAdd:
		return engagement.RemoteRetweets, 1, true
	case OpBookmarkAdd:
		return engagement.RemoteBookmarks, 1, true
	case OpBookmarkRemove:
		return engagement.RemoteBookmarks, -1, true
	case OpCommentAdd:
		return engagement.RemoteComments, 1, true
	}
	return 0, 0, false
}

// opcode maps an event onto the packet opcode byte used on Redis.
func (e *RemoteEvent) opcode() (uint8, bool) {
	switch e.Op {
	case OpLikeAdd:
		return utils.EvOpLikeAdd, true
	case OpLikeRemove:
		return utils.EvOpLikeRemove, true
	case OpRetweetAdd:
		return utils.EvOpRetweetAdd, true
	case OpBookmarkAdd:
		return utils.EvOpBookmarkAdd, true
	case OpBookmarkRemove:
		return utils.EvOpBookmarkRemove, true
	case OpCommentAdd:
		return utils.EvOpCommentAdd, true
	}
	return 0, false
}
