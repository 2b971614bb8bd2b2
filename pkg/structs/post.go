package structs

type V0Post struct {
	Id            string          `json:"_id" msgpack:"_id"`
	Author        V0Author        `json:"author" msgpack:"author"`
	Content       string          `json:"content" msgpack:"content"`
	MediaUrl      string          `json:"media_url,omitempty" msgpack:"media_url,omitempty"`
	Timestamp     V0PostTimestamp `json:"t" msgpack:"t"`
	LikeCount     int64           `json:"like_count" msgpack:"like_count"`
	CommentCount  int64           `json:"comment_count" msgpack:"comment_count"`
	RetweetCount  int64           `json:"retweet_count" msgpack:"retweet_count"`
	BookmarkCount int64           `json:"bookmark_count" msgpack:"bookmark_count"`
	HasLiked      bool            `json:"has_liked" msgpack:"has_liked"`
	HasRetweeted  bool            `json:"has_retweeted" msgpack:"has_retweeted"`
	HasBookmarked bool            `json:"has_bookmarked" msgpack:"has_bookmarked"`

	// Correlation key echoed back by the backend on creation.
	Uuid string `json:"uuid,omitempty" msgpack:"uuid,omitempty"`
}

type V0PostTimestamp struct {
	Unix int64 `json:"e" msgpack:"e"`
}

type V0Author struct {
	Id       string `json:"_id" msgpack:"_id"`
	Username string `json:"username" msgpack:"username"`
	Avatar   string `json:"avatar,omitempty" msgpack:"avatar,omitempty"`
}
