package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/clapo-social/client-core/pkg/backend"
	"github.com/clapo-social/client-core/pkg/chain"
	"github.com/clapo-social/client-core/pkg/notifications"
	"github.com/clapo-social/client-core/pkg/structs"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxDraftLen bounds the composer text.
const MaxDraftLen = 200

type State uint8

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Draft is the composer-scoped transient post content.
type Draft struct {
	Text     string
	MediaUrl string
}

func (d Draft) empty() bool {
	return strings.TrimSpace(d.Text) == "" && d.MediaUrl == ""
}

// Creator creates the core post. Failure here is fatal for the submission.
type Creator interface {
	CreatePost(ctx context.Context, req backend.CreatePostReq) (structs.V0Post, error)
}

// Rewarder increments the daily post counter, best-effort.
type Rewarder interface {
	IncrementPostCount(ctx context.Context, userId, correlationUuid, contentType string) (bool, error)
}

// Minter puts the post token on chain, best-effort.
type Minter interface {
	CreatePostToken(ctx context.Context, req chain.MintReq) (string, error)
}

// Success toast variants. Which one is emitted depends on how the two
// best-effort sub-steps went.
const (
	MsgPublished               = "Post published!"
	MsgPublishedRewardAndToken = "Post published! Aura reward earned and post token minted."
	MsgPublishedRewardOnly     = "Post published! Aura reward earned."
	MsgPublishedNoWallet       = "Post published! Connect a wallet to mint your posts."
	MsgPublishFailed           = "Your post could not be published. Please try again."
)

// Mint-failure sub-reasons. They never change the terminal outcome; they
// only pick the suffix of the success toast.
const (
	MintFailTokenExists       = "A token for this post was already minted."
	MintFailInsufficientFunds = "Token mint skipped: wallet balance too low."
	MintFailReverted          = "Token mint transaction was reverted."
)

// Outcome reports a successful submission, including how the best-effort
// sub-steps went.
type Outcome struct {
	Post          structs.V0Post
	RewardGranted bool
	TokenTxHash   string
	MintSkipped   bool

	// MintFailReason is the user-facing sub-reason when the mint was
	// attempted and failed for a known cause, empty otherwise.
	MintFailReason string

	Message string
}

// Controller drives the create-post side-effect chain for one composer
// instance: never double-submits, always lands in a terminal state, and
// reports success as long as the core post was created.
type Controller struct {
	creator  Creator
	rewarder Rewarder
	minter   Minter
	wallet   chain.Wallet
	notifier notifications.Notifier
	logger   *zap.Logger

	mu         sync.Mutex
	draft      Draft
	state      State
	submitting bool // the SubmissionGuard
}

func NewController(
	creator Creator,
	rewarder Rewarder,
	minter Minter,
	wallet chain.Wallet,
	notifier notifications.Notifier,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		creator:  creator,
		rewarder: rewarder,
		minter:   minter,
		wallet:   wallet,
		notifier: notifier,
		logger:   logger,
		state:    StateIdle,
	}
}

// SetDraft replaces the draft content.
func (c *Controller) SetDraft(text, mediaUrl string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = Draft{Text: text, MediaUrl: mediaUrl}
}

func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submitting reports whether the SubmissionGuard is currently held.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit runs the whole chain on the stored draft: validate, create the
// post, then the two best-effort sub-steps (daily reward, token mint).
// dailyLimitReached is the externally supplied quota precondition; it is
// checked before anything touches the network.
//
// The guard is released on every exit path, including a panic out of the
// creator, so the composer can never end up stuck.
func (c *Controller) Submit(ctx context.Context, userId string, dailyLimitReached bool) (Outcome, error) {
	return c.submit(ctx, userId, nil, dailyLimitReached)
}

// SubmitDraft stores and submits the given draft in one step. While another
// submission is in flight the incoming draft is discarded, so it can neither
// replace the draft being submitted nor be wiped by that submission's
// success.
func (c *Controller) SubmitDraft(ctx context.Context, userId string, draft Draft, dailyLimitReached bool) (Outcome, error) {
	return c.submit(ctx, userId, &draft, dailyLimitReached)
}

func (c *Controller) submit(ctx context.Context, userId string, newDraft *Draft, dailyLimitReached bool) (outcome Outcome, err error) {
	// Validation: failures stay Idle, never set the guard, never reach the
	// network.
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return Outcome{}, ErrSubmissionInFlight
	}
	if newDraft != nil {
		c.draft = *newDraft
	}
	c.state = StateValidating
	draft := c.draft
	if draft.empty() {
		c.state = StateIdle
		c.mu.Unlock()
		return Outcome{}, ErrEmptyDraft
	}
	if utf8.RuneCountInString(draft.Text) > MaxDraftLen {
		c.state = StateIdle
		c.mu.Unlock()
		return Outcome{}, ErrDraftTooLong
	}
	if dailyLimitReached {
		c.state = StateIdle
		c.mu.Unlock()
		return Outcome{}, ErrDailyLimitReached
	}

	// Validating -> Submitting: latch the guard and mint the correlation
	// UUID exactly once for this attempt.
	c.submitting = true
	c.state = StateSubmitting
	correlationUuid := uuid.NewString()
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("submission panicked", zap.Any("panic", r))
			sentry.CaptureException(fmt.Errorf("submission panic: %v", r))
			c.mu.Lock()
			c.state = StateFailed
			c.mu.Unlock()
			c.notifier.Notify(userId, MsgPublishFailed, notifications.KindError)
			err = fmt.Errorf("%w: panic: %v", ErrCreatePostFailed, r)
		}
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	// CreatingPost: the only fatal sub-step. The draft survives for retry.
	post, createErr := c.creator.CreatePost(ctx, backend.CreatePostReq{
		UserId:   userId,
		Content:  draft.Text,
		MediaUrl: draft.MediaUrl,
		Uuid:     correlationUuid,
	})
	if createErr != nil {
		c.logger.Error("create post failed", zap.String("uuid", correlationUuid), zap.Error(createErr))
		c.mu.Lock()
		c.state = StateFailed
		c.mu.Unlock()
		c.notifier.Notify(userId, MsgPublishFailed, notifications.KindError)
		return Outcome{}, fmt.Errorf("%w: %v", ErrCreatePostFailed, createErr)
	}

	// AwardingDailyReward: best-effort, same correlation key.
	rewardGranted := c.awardDailyReward(ctx, userId, correlationUuid, draft)

	// MintingToken: best-effort, skipped entirely without a wallet.
	txHash, mintSkipped, mintFailReason := c.mintToken(ctx, userId, correlationUuid, draft)

	// Succeeded regardless of how the extras went.
	c.mu.Lock()
	c.draft = Draft{}
	c.state = StateSucceeded
	c.mu.Unlock()

	outcome = Outcome{
		Post:           post,
		RewardGranted:  rewardGranted,
		TokenTxHash:    txHash,
		MintSkipped:    mintSkipped,
		MintFailReason: mintFailReason,
		Message:        successMessage(rewardGranted, txHash != "", mintSkipped, mintFailReason),
	}
	c.notifier.Notify(userId, outcome.Message, notifications.KindSuccess)
	return outcome, nil
}

func (c *Controller) awardDailyReward(ctx context.Context, userId, correlationUuid string, draft Draft) bool {
	contentType := "text"
	if draft.MediaUrl != "" {
		contentType = "media"
	}
	granted, err := c.rewarder.IncrementPostCount(ctx, userId, correlationUuid, contentType)
	if err != nil {
		c.logger.Warn("daily reward failed", zap.String("uuid", correlationUuid), zap.Error(err))
		sentry.CaptureException(err)
		return false
	}
	return granted
}

func (c *Controller) mintToken(ctx context.Context, userId, correlationUuid string, draft Draft) (txHash string, skipped bool, failReason string) {
	if c.wallet == nil || !c.wallet.Connected() {
		return "", true, ""
	}

	txHash, err := c.minter.CreatePostToken(ctx, chain.MintReq{
		Uuid:       correlationUuid,
		Content:    draft.Text,
		MediaUrl:   draft.MediaUrl,
		AuthUserId: userId,
		SponsorGas: true,
	})
	if err != nil {
		err = chain.ClassifyMintError(err)
		c.logger.Warn("token mint failed", zap.String("uuid", correlationUuid), zap.Error(err))
		sentry.CaptureException(err)
		return "", false, mintFailReason(err)
	}
	return txHash, false, ""
}

// mintFailReason picks the toast sub-reason for the three known mint
// failures. Anything else gets no reason text.
func mintFailReason(err error) string {
	switch {
	case errors.Is(err, chain.ErrTokenExists):
		return MintFailTokenExists
	case errors.Is(err, chain.ErrInsufficientFunds):
		return MintFailInsufficientFunds
	case errors.Is(err, chain.ErrTxReverted):
		return MintFailReverted
	}
	return ""
}

func successMessage(rewardGranted, minted, mintSkipped bool, mintFailReason string) string {
	switch {
	case mintSkipped:
		return MsgPublishedNoWallet
	case rewardGranted && minted:
		return MsgPublishedRewardAndToken
	}

	base := MsgPublished
	if rewardGranted {
		base = MsgPublishedRewardOnly
	}
	if mintFailReason != "" {
		return base + " " + mintFailReason
	}
	return base
}
