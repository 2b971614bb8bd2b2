package v0_rest

type EngageReq struct {
	UserId string `json:"user_id" validate:"required"`
}

type AddCommentReq struct {
	UserId  string `json:"user_id" validate:"required"`
	Content string `json:"content" validate:"required,max=500"`
}

type CreatePostReq struct {
	UserId   string `json:"user_id" validate:"required"`
	Content  string `json:"content" validate:"max=200"`
	MediaUrl string `json:"media_url" validate:"max=2048"`
}
