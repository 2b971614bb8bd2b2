package engagement

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/clapo-social/client-core/pkg/clientid"
	"github.com/clapo-social/client-core/pkg/notifications"
	"github.com/clapo-social/client-core/pkg/structs"
	"go.uber.org/zap"
)

// Api is the slice of the upstream client the state machine drives. Any
// returned error means the remote operation failed and the optimistic
// mutation is rolled back.
type Api interface {
	LikePost(ctx context.Context, postId, userId string) error
	UnlikePost(ctx context.Context, postId, userId string) error
	RetweetPost(ctx context.Context, postId, userId string) error
	BookmarkPost(ctx context.Context, postId, userId string) error
	UnbookmarkPost(ctx context.Context, postId, userId string) error
	AddComment(ctx context.Context, postId, userId, content string) (structs.V0Comment, error)
}

type opKind uint8

const (
	opLike opKind = iota
	opRetweet
	opBookmark
	opComment
)

// State owns the client-visible truth for one post's engagement counts and
// one user's membership flags. All mutation goes through the optimistic
// operations below; nothing else may touch the fields.
//
// Per operation kind there is at most one remote call in flight, enforced
// by the inFlight guards. That invariant is what makes rollback-by-inverse
// correct without a refetch.
type State struct {
	postId string
	api    Api

	notifier notifications.Notifier
	logger   *zap.Logger

	mu        sync.Mutex
	likes     int64
	comments  int64
	retweets  int64
	bookmarks int64

	liked      bool
	retweeted  bool
	bookmarked bool

	inFlight [4]bool

	commentList []structs.V0Comment
}

// NewState seeds a state machine from an upstream post payload.
func NewState(seed structs.V0Post, api Api, notifier notifications.Notifier, logger *zap.Logger) *State {
	return &State{
		postId:    seed.Id,
		api:       api,
		notifier:  notifier,
		logger:    logger,
		likes:     seed.LikeCount,
		comments:  seed.CommentCount,
		retweets:  seed.RetweetCount,
		bookmarks: seed.BookmarkCount,

		liked:      seed.HasLiked,
		retweeted:  seed.HasRetweeted,
		bookmarked: seed.HasBookmarked,
	}
}

func (s *State) PostId() string {
	return s.postId
}

// Snapshot returns the current counts and membership flags.
func (s *State) Snapshot() structs.V0Engagement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return structs.V0Engagement{
		PostId:        s.postId,
		LikeCount:     s.likes,
		CommentCount:  s.comments,
		RetweetCount:  s.retweets,
		BookmarkCount: s.bookmarks,
		HasLiked:      s.liked,
		HasRetweeted:  s.retweeted,
		HasBookmarked: s.bookmarked,
	}
}

// Comments returns a copy of the local comment sequence, in insertion order.
func (s *State) Comments() []structs.V0Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]structs.V0Comment, len(s.commentList))
	copy(out, s.commentList)
	return out
}

// ToggleLike flips the like membership optimistically, confirms it with the
// backend and reverts exactly on failure. A second call while the first is
// still in flight is a silent no-op.
func (s *State) ToggleLike(ctx context.Context, userId string) error {
	if userId == "" {
		return ErrSignInRequired
	}

	s.mu.Lock()
	if s.inFlight[opLike] {
		s.mu.Unlock()
		return nil
	}
	s.inFlight[opLike] = true

	prevLiked, prevLikes := s.liked, s.likes
	liking := !s.liked
	if liking {
		s.liked = true
		s.likes += 1
	} else {
		s.liked = false
		s.likes = max(0, s.likes-1)
	}
	s.mu.Unlock()

	var err error
	if liking {
		err = s.api.LikePost(ctx, s.postId, userId)
	} else {
		err = s.api.UnlikePost(ctx, s.postId, userId)
	}

	s.mu.Lock()
	s.inFlight[opLike] = false
	if err != nil {
		s.liked = prevLiked
		s.likes = prevLikes
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("like rolled back", zap.String("post", s.postId), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrLikeFailed, err)
	}
	return nil
}

// Retweet is monotonic: once the user has retweeted, further calls change
// nothing and hit no network.
func (s *State) Retweet(ctx context.Context, userId string) error {
	if userId == "" {
		return ErrSignInRequired
	}

	s.mu.Lock()
	if s.inFlight[opRetweet] || s.retweeted {
		s.mu.Unlock()
		return nil
	}
	s.inFlight[opRetweet] = true
	s.retweeted = true
	s.retweets += 1
	s.mu.Unlock()

	err := s.api.RetweetPost(ctx, s.postId, userId)

	s.mu.Lock()
	s.inFlight[opRetweet] = false
	if err != nil {
		s.retweeted = false
		s.retweets = max(0, s.retweets-1)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("retweet rolled back", zap.String("post", s.postId), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRetweetFailed, err)
	}
	return nil
}

// ToggleBookmark has the same optimistic/rollback shape as ToggleLike, on
// independent state.
func (s *State) ToggleBookmark(ctx context.Context, userId string) error {
	if userId == "" {
		return ErrSignInRequired
	}

	s.mu.Lock()
	if s.inFlight[opBookmark] {
		s.mu.Unlock()
		return nil
	}
	s.inFlight[opBookmark] = true

	prevMarked, prevCount := s.bookmarked, s.bookmarks
	marking := !s.bookmarked
	if marking {
		s.bookmarked = true
		s.bookmarks += 1
	} else {
		s.bookmarked = false
		s.bookmarks = max(0, s.bookmarks-1)
	}
	s.mu.Unlock()

	var err error
	if marking {
		err = s.api.BookmarkPost(ctx, s.postId, userId)
	} else {
		err = s.api.UnbookmarkPost(ctx, s.postId, userId)
	}

	s.mu.Lock()
	s.inFlight[opBookmark] = false
	if err != nil {
		s.bookmarked = prevMarked
		s.bookmarks = prevCount
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("bookmark rolled back", zap.String("post", s.postId), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrBookmarkFailed, err)
	}
	return nil
}

// AddComment appends a locally fabricated comment the instant the user
// submits, then confirms it with the backend. On rejection the fabricated
// comment is removed, the count restored, and a failure toast emitted; on
// success a confirmation toast is emitted.
func (s *State) AddComment(ctx context.Context, userId, text string) error {
	if userId == "" {
		return ErrSignInRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyComment
	}

	s.mu.Lock()
	if s.inFlight[opComment] {
		s.mu.Unlock()
		return nil
	}
	s.inFlight[opComment] = true

	optimistic := structs.V0Comment{
		Id:         clientid.GenOptimisticId(),
		PostId:     s.postId,
		Author:     structs.V0Author{Id: userId},
		Content:    text,
		Timestamp:  structs.V0PostTimestamp{Unix: time.Now().UnixMilli()},
		Optimistic: true,
	}
	s.commentList = append(s.commentList, optimistic)
	s.comments += 1
	s.mu.Unlock()

	confirmed, err := s.api.AddComment(ctx, s.postId, userId, text)

	s.mu.Lock()
	s.inFlight[opComment] = false
	if err != nil {
		s.removeCommentLocked(optimistic.Id)
		s.comments = max(0, s.comments-1)
	} else {
		s.confirmCommentLocked(optimistic.Id, confirmed)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("comment rolled back", zap.String("post", s.postId), zap.Error(err))
		s.notifier.Notify(userId, "Your comment could not be posted.", notifications.KindError)
		return fmt.Errorf("%w: %v", ErrCommentFailed, err)
	}
	s.notifier.Notify(userId, "Comment posted.", notifications.KindSuccess)
	return nil
}

func (s *State) removeCommentLocked(id string) {
	for i, c := range s.commentList {
		if c.Id == id {
			s.commentList = append(s.commentList[:i], s.commentList[i+1:]...)
			return
		}
	}
}

func (s *State) confirmCommentLocked(optimisticId string, confirmed structs.V0Comment) {
	for i, c := range s.commentList {
		if c.Id == optimisticId {
			if confirmed.Id != "" {
				s.commentList[i].Id = confirmed.Id
			}
			s.commentList[i].Optimistic = false
			return
		}
	}
}
