package v0_rest

import (
	"errors"
	"net/http"

	"github.com/clapo-social/client-core/pkg/composer"
	"github.com/clapo-social/client-core/pkg/engagement"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
)

func (d *Deps) getEngagement(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "postId")
	userId := r.URL.Query().Get("requester")

	state, err := d.Registry.Get(r.Context(), postId, userId)
	if err != nil {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	returnData(w, http.StatusOK, EngagementResp{
		Engagement: state.Snapshot(),
	})
}

func (d *Deps) getComments(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "postId")
	userId := r.URL.Query().Get("requester")

	state, err := d.Registry.Get(r.Context(), postId, userId)
	if err != nil {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	returnData(w, http.StatusOK, CommentsResp{
		Comments: state.Comments(),
	})
}

func (d *Deps) toggleLike(w http.ResponseWriter, r *http.Request) {
	d.engage(w, r, "like", func(state *engagement.State, userId string) error {
		return state.ToggleLike(r.Context(), userId)
	})
}

func (d *Deps) retweet(w http.ResponseWriter, r *http.Request) {
	d.engage(w, r, "retweet", func(state *engagement.State, userId string) error {
		return state.Retweet(r.Context(), userId)
	})
}

func (d *Deps) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	d.engage(w, r, "bookmark", func(state *engagement.State, userId string) error {
		return state.ToggleBookmark(r.Context(), userId)
	})
}

func (d *Deps) addComment(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "postId")

	var body AddCommentReq
	if !decodeBody(w, r, &body) {
		return
	}

	if ratelimited("comment", "user", body.UserId) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}

	state, err := d.Registry.Get(r.Context(), postId, body.UserId)
	if err != nil {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	if err := ratelimit(w, "comment", "user", body.UserId, 10, 60); err != nil {
		sentry.CaptureException(err)
	}

	if err := state.AddComment(r.Context(), body.UserId, body.Content); err != nil {
		returnEngagementErr(w, err)
		return
	}

	returnData(w, http.StatusOK, CommentsResp{
		Comments: state.Comments(),
	})
}

// engage runs one engagement operation and responds with the resulting
// snapshot. On failure the snapshot still reflects the rolled-back state.
func (d *Deps) engage(w http.ResponseWriter, r *http.Request, bucket string, op func(*engagement.State, string) error) {
	postId := chi.URLParam(r, "postId")

	var body EngageReq
	if !decodeBody(w, r, &body) {
		return
	}

	if ratelimited(bucket, "user", body.UserId) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}

	state, err := d.Registry.Get(r.Context(), postId, body.UserId)
	if err != nil {
		returnErr(w, http.StatusNotFound, ErrNotFound, nil)
		return
	}

	if err := ratelimit(w, bucket, "user", body.UserId, 30, 60); err != nil {
		sentry.CaptureException(err)
	}

	if err := op(state, body.UserId); err != nil {
		returnEngagementErr(w, err)
		return
	}

	returnData(w, http.StatusOK, EngagementResp{
		Engagement: state.Snapshot(),
	})
}

func returnEngagementErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engagement.ErrSignInRequired):
		returnErr(w, http.StatusUnauthorized, ErrUnauthorized, nil)
	case errors.Is(err, engagement.ErrEmptyComment):
		returnErr(w, http.StatusBadRequest, ErrBadRequest, nil)
	default:
		// remote rejection: local state already rolled back
		returnErr(w, http.StatusBadGateway, ErrUpstream, nil)
	}
}

func (d *Deps) createPost(w http.ResponseWriter, r *http.Request) {
	var body CreatePostReq
	if !decodeBody(w, r, &body) {
		return
	}

	if ratelimited("post", "user", body.UserId) {
		returnErr(w, http.StatusTooManyRequests, ErrRatelimited, nil)
		return
	}
	if err := ratelimit(w, "post", "user", body.UserId, 5, 60); err != nil {
		sentry.CaptureException(err)
	}

	ctrl := d.Composer(body.UserId)
	draft := composer.Draft{Text: body.Content, MediaUrl: body.MediaUrl}

	outcome, err := ctrl.SubmitDraft(r.Context(), body.UserId, draft, d.DailyLimitReached(r.Context(), body.UserId))
	if err != nil {
		switch {
		case errors.Is(err, composer.ErrSubmissionInFlight):
			returnErr(w, http.StatusConflict, ErrInFlight, nil)
		case errors.Is(err, composer.ErrDailyLimitReached):
			returnErr(w, http.StatusForbidden, ErrDailyLimit, nil)
		case errors.Is(err, composer.ErrEmptyDraft), errors.Is(err, composer.ErrDraftTooLong):
			returnErr(w, http.StatusBadRequest, ErrBadRequest, nil)
		default:
			returnErr(w, http.StatusBadGateway, ErrUpstream, nil)
		}
		return
	}

	// seed a state machine so follow-up engagement ops skip the upstream
	// fetch
	d.Registry.Seed(outcome.Post, body.UserId)

	returnData(w, http.StatusOK, CreatePostResp{
		Post:           outcome.Post,
		Message:        outcome.Message,
		RewardGranted:  outcome.RewardGranted,
		TokenTxHash:    outcome.TokenTxHash,
		MintSkipped:    outcome.MintSkipped,
		MintFailReason: outcome.MintFailReason,
	})
}
