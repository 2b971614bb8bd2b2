package composer

import "errors"

var (
	ErrEmptyDraft         = errors.New("draft has no text or media")
	ErrDraftTooLong       = errors.New("draft text exceeds 200 characters")
	ErrDailyLimitReached  = errors.New("daily post limit reached")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrCreatePostFailed   = errors.New("create post failed")
)
