package structs

type V0Comment struct {
	Id        string          `json:"_id" msgpack:"_id"`
	PostId    string          `json:"post_id" msgpack:"post_id"`
	Author    V0Author        `json:"author" msgpack:"author"`
	Content   string          `json:"content" msgpack:"content"`
	Timestamp V0PostTimestamp `json:"t" msgpack:"t"`

	// Set while the comment only exists locally, before the backend has
	// confirmed it.
	Optimistic bool `json:"optimistic,omitempty" msgpack:"optimistic,omitempty"`
}
