package v0_rest

import "errors"

var (
	ErrBadRequest   = errors.New("badRequest")       // 400
	ErrUnauthorized = errors.New("Unauthorized")     // 401
	ErrDailyLimit   = errors.New("dailyLimit")       // 403
	ErrNotFound     = errors.New("notFound")         // 404
	ErrInFlight     = errors.New("inFlight")         // 409
	ErrRatelimited  = errors.New("tooManyRequests")  // 429
	ErrInternal     = errors.New("Internal")         // 500
	ErrUpstream     = errors.New("upstreamRejected") // 502
)
