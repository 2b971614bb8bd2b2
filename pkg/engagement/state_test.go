package engagement

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/clapo-social/client-core/pkg/notifications"
	"github.com/clapo-social/client-core/pkg/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeApi counts calls and can be made to fail every call, or to block
// in-flight calls behind a gate so tests can interleave taps.
type fakeApi struct {
	mu    sync.Mutex
	calls map[string]int

	failAll bool

	entered chan struct{} // closed-over signal that a call has started
	gate    chan struct{} // calls block until this is closed
}

func newFakeApi() *fakeApi {
	return &fakeApi{calls: map[string]int{}}
}

func (f *fakeApi) record(name string) error {
	f.mu.Lock()
	f.calls[name]++
	entered := f.entered
	gate := f.gate
	failAll := f.failAll
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if failAll {
		return errors.New("remote rejected")
	}
	return nil
}

func (f *fakeApi) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeApi) LikePost(ctx context.Context, postId, userId string) error {
	return f.record("like")
}
func (f *fakeApi) UnlikePost(ctx context.Context, postId, userId string) error {
	return f.record("unlike")
}
func (f *fakeApi) RetweetPost(ctx context.Context, postId, userId string) error {
	return f.record("retweet")
}
func (f *fakeApi) BookmarkPost(ctx context.Context, postId, userId string) error {
	return f.record("bookmark")
}
func (f *fakeApi) UnbookmarkPost(ctx context.Context, postId, userId string) error {
	return f.record("unbookmark")
}
func (f *fakeApi) AddComment(ctx context.Context, postId, userId, content string) (structs.V0Comment, error) {
	err := f.record("comment")
	if err != nil {
		return structs.V0Comment{}, err
	}
	return structs.V0Comment{Id: "srv-1", PostId: postId, Content: content}, nil
}

func newTestState(seed structs.V0Post, api Api) (*State, *notifications.MemoryNotifier) {
	sink := notifications.NewMemoryNotifier()
	return NewState(seed, api, sink, zap.NewNop()), sink
}

func TestToggleLikeThenUnlike(t *testing.T) {
	api := newFakeApi()
	s, _ := newTestState(structs.V0Post{Id: "p1", LikeCount: 5}, api)

	require.NoError(t, s.ToggleLike(context.Background(), "u1"))
	snap := s.Snapshot()
	assert.True(t, snap.HasLiked)
	assert.EqualValues(t, 6, snap.LikeCount)

	require.NoError(t, s.ToggleLike(context.Background(), "u1"))
	snap = s.Snapshot()
	assert.False(t, snap.HasLiked)
	assert.EqualValues(t, 5, snap.LikeCount)

	assert.Equal(t, 1, api.count("like"))
	assert.Equal(t, 1, api.count("unlike"))
}

func TestToggleLikeRollbackExact(t *testing.T) {
	for _, tc := range []struct {
		name  string
		liked bool
		likes int64
	}{
		{"like from zero", false, 0},
		{"like from five", false, 5},
		{"unlike from one", true, 1},
		{"unlike from zero", true, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeApi()
			api.failAll = true
			s, _ := newTestState(structs.V0Post{Id: "p1", LikeCount: tc.likes, HasLiked: tc.liked}, api)

			err := s.ToggleLike(context.Background(), "u1")
			assert.ErrorIs(t, err, ErrLikeFailed)

			snap := s.Snapshot()
			assert.Equal(t, tc.liked, snap.HasLiked)
			assert.Equal(t, tc.likes, snap.LikeCount)
		})
	}
}

func TestDoubleTapBeforeSettleIsOneCall(t *testing.T) {
	api := newFakeApi()
	api.entered = make(chan struct{}, 1)
	api.gate = make(chan struct{})
	s, _ := newTestState(structs.V0Post{Id: "p1", LikeCount: 5}, api)

	done := make(chan error, 1)
	go func() {
		done <- s.ToggleLike(context.Background(), "u1")
	}()
	<-api.entered // first tap is now in flight

	// second tap: silent no-op, no extra mutation, no extra call
	require.NoError(t, s.ToggleLike(context.Background(), "u1"))
	snap := s.Snapshot()
	assert.True(t, snap.HasLiked)
	assert.EqualValues(t, 6, snap.LikeCount)

	close(api.gate)
	require.NoError(t, <-done)

	assert.Equal(t, 1, api.count("like"))
	assert.Equal(t, 0, api.count("unlike"))
	snap = s.Snapshot()
	assert.True(t, snap.HasLiked)
	assert.EqualValues(t, 6, snap.LikeCount)
}

func TestRetweetMonotonic(t *testing.T) {
	api := newFakeApi()
	s, _ := newTestState(structs.V0Post{Id: "p1", RetweetCount: 2}, api)

	require.NoError(t, s.Retweet(context.Background(), "u1"))
	snap := s.Snapshot()
	assert.True(t, snap.HasRetweeted)
	assert.EqualValues(t, 3, snap.RetweetCount)

	// second call: no state change, no network call
	require.NoError(t, s.Retweet(context.Background(), "u1"))
	snap = s.Snapshot()
	assert.True(t, snap.HasRetweeted)
	assert.EqualValues(t, 3, snap.RetweetCount)
	assert.Equal(t, 1, api.count("retweet"))
}

func TestRetweetRollbackReopensAffordance(t *testing.T) {
	api := newFakeApi()
	api.failAll = true
	s, _ := newTestState(structs.V0Post{Id: "p1", RetweetCount: 2}, api)

	err := s.Retweet(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrRetweetFailed)

	snap := s.Snapshot()
	assert.False(t, snap.HasRetweeted)
	assert.EqualValues(t, 2, snap.RetweetCount)

	// a failed retweet is not a consumed retweet
	api.failAll = false
	require.NoError(t, s.Retweet(context.Background(), "u1"))
	assert.True(t, s.Snapshot().HasRetweeted)
}

func TestCountsNeverNegative(t *testing.T) {
	api := newFakeApi()
	s, _ := newTestState(structs.V0Post{Id: "p1", HasLiked: true, HasBookmarked: true}, api)

	// seeded counts are zero but membership is set: unlike/unbookmark must clamp
	require.NoError(t, s.ToggleLike(context.Background(), "u1"))
	require.NoError(t, s.ToggleBookmark(context.Background(), "u1"))

	snap := s.Snapshot()
	assert.GreaterOrEqual(t, snap.LikeCount, int64(0))
	assert.GreaterOrEqual(t, snap.BookmarkCount, int64(0))

	// toggle back up and down a few times, checking after every step
	for i := 0; i < 4; i++ {
		require.NoError(t, s.ToggleLike(context.Background(), "u1"))
		require.NoError(t, s.ToggleBookmark(context.Background(), "u1"))
		snap = s.Snapshot()
		assert.GreaterOrEqual(t, snap.LikeCount, int64(0))
		assert.GreaterOrEqual(t, snap.BookmarkCount, int64(0))
	}
}

func TestBookmarkRollbackExact(t *testing.T) {
	api := newFakeApi()
	api.failAll = true
	s, _ := newTestState(structs.V0Post{Id: "p1", BookmarkCount: 7, HasBookmarked: true}, api)

	err := s.ToggleBookmark(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrBookmarkFailed)

	snap := s.Snapshot()
	assert.True(t, snap.HasBookmarked)
	assert.EqualValues(t, 7, snap.BookmarkCount)
}

func TestAddCommentConfirmed(t *testing.T) {
	api := newFakeApi()
	s, sink := newTestState(structs.V0Post{Id: "p1", CommentCount: 3}, api)

	require.NoError(t, s.AddComment(context.Background(), "u1", "  hi there  "))

	snap := s.Snapshot()
	assert.EqualValues(t, 4, snap.CommentCount)

	list := s.Comments()
	require.Len(t, list, 1)
	assert.Equal(t, "srv-1", list[0].Id)
	assert.Equal(t, "hi there", list[0].Content)
	assert.False(t, list[0].Optimistic)

	toasts := sink.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, notifications.KindSuccess, toasts[0].Kind)
}

func TestAddCommentRolledBack(t *testing.T) {
	api := newFakeApi()
	api.failAll = true
	s, sink := newTestState(structs.V0Post{Id: "p1", CommentCount: 3}, api)

	err := s.AddComment(context.Background(), "u1", "hi")
	assert.ErrorIs(t, err, ErrCommentFailed)

	snap := s.Snapshot()
	assert.EqualValues(t, 3, snap.CommentCount)
	assert.Empty(t, s.Comments())

	toasts := sink.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, notifications.KindError, toasts[0].Kind)
}

func TestValidationNeverHitsNetwork(t *testing.T) {
	api := newFakeApi()
	s, _ := newTestState(structs.V0Post{Id: "p1"}, api)

	assert.ErrorIs(t, s.ToggleLike(context.Background(), ""), ErrSignInRequired)
	assert.ErrorIs(t, s.Retweet(context.Background(), ""), ErrSignInRequired)
	assert.ErrorIs(t, s.ToggleBookmark(context.Background(), ""), ErrSignInRequired)
	assert.ErrorIs(t, s.AddComment(context.Background(), "", "hi"), ErrSignInRequired)
	assert.ErrorIs(t, s.AddComment(context.Background(), "u1", "   "), ErrEmptyComment)

	assert.Empty(t, api.calls)
}

func TestIndependentKindsMayOverlap(t *testing.T) {
	api := newFakeApi()
	api.entered = make(chan struct{}, 1)
	api.gate = make(chan struct{})
	s, _ := newTestState(structs.V0Post{Id: "p1"}, api)

	done := make(chan error, 1)
	go func() {
		done <- s.ToggleLike(context.Background(), "u1")
	}()
	<-api.entered

	// bookmark is not blocked by the in-flight like; detach the gate for it
	api.mu.Lock()
	api.entered = nil
	gate := api.gate
	api.gate = nil
	api.mu.Unlock()

	require.NoError(t, s.ToggleBookmark(context.Background(), "u1"))
	assert.True(t, s.Snapshot().HasBookmarked)

	close(gate)
	require.NoError(t, <-done)
	assert.True(t, s.Snapshot().HasLiked)
}
