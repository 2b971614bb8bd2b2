package structs

// V0Engagement is a point-in-time snapshot of one post's counts and the
// requesting user's membership flags, as served by the gateway.
type V0Engagement struct {
	PostId        string `json:"post_id" msgpack:"post_id"`
	LikeCount     int64  `json:"like_count" msgpack:"like_count"`
	CommentCount  int64  `json:"comment_count" msgpack:"comment_count"`
	RetweetCount  int64  `json:"retweet_count" msgpack:"retweet_count"`
	BookmarkCount int64  `json:"bookmark_count" msgpack:"bookmark_count"`
	HasLiked      bool   `json:"has_liked" msgpack:"has_liked"`
	HasRetweeted  bool   `json:"has_retweeted" msgpack:"has_retweeted"`
	HasBookmarked bool   `json:"has_bookmarked" msgpack:"has_bookmarked"`
}

type V0Toast struct {
	Message string `json:"message" msgpack:"message"`
	Kind    string `json:"kind" msgpack:"kind"` // success, error
}
