package engagement

import (
	"context"
	"sync"

	"github.com/clapo-social/client-core/pkg/notifications"
	"github.com/clapo-social/client-core/pkg/structs"
	"go.uber.org/zap"
)

// Fetcher seeds new state machines from the upstream API.
type Fetcher interface {
	GetPost(ctx context.Context, postId, userId string) (structs.V0Post, error)
}

type stateKey struct {
	postId string
	userId string
}

// Registry holds the per-(post, user) state machines owned by this gateway
// process. States are created lazily from upstream snapshots and reused for
// the lifetime of the process.
type Registry struct {
	api      Api
	fetcher  Fetcher
	notifier notifications.Notifier
	logger   *zap.Logger

	mu     sync.Mutex
	states map[stateKey]*State
}

func NewRegistry(api Api, fetcher Fetcher, notifier notifications.Notifier, logger *zap.Logger) *Registry {
	return &Registry{
		api:      api,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		states:   make(map[stateKey]*State),
	}
}

// Get returns the state machine for (postId, userId), fetching the post from
// upstream to seed it on first use.
func (r *Registry) Get(ctx context.Context, postId, userId string) (*State, error) {
	key := stateKey{postId: postId, userId: userId}

	r.mu.Lock()
	if s, ok := r.states[key]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	// Seed outside the registry lock; a lost race just discards a snapshot.
	seed, err := r.fetcher.GetPost(ctx, postId, userId)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[key]; ok {
		return s, nil
	}
	s := NewState(seed, r.api, r.notifier, r.logger)
	r.states[key] = s
	return s, nil
}

// Seed registers a state machine from an already-fetched post payload,
// replacing nothing if one already exists.
func (r *Registry) Seed(post structs.V0Post, userId string) *State {
	key := stateKey{postId: post.Id, userId: userId}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[key]; ok {
		return s
	}
	s := NewState(post, r.api, r.notifier, r.logger)
	r.states[key] = s
	return s
}

// ApplyRemoteDelta folds a server-side count change (another user's like,
// comment, etc.) into every local state machine tracking the post. Fields
// with a local operation in flight are skipped: the in-flight rollback
// bookkeeping owns them until it settles.
func (r *Registry) ApplyRemoteDelta(postId string, kind RemoteDeltaKind, delta int64) {
	r.mu.Lock()
	var targets []*State
	for key, s := range r.states {
		if key.postId == postId {
			targets = append(targets, s)
		}
	}
	r.mu.Unlock()

	for _, s := range targets {
		s.applyRemoteDelta(kind, delta)
	}
}

// RemoteDeltaKind names the count a remote event adjusts.
type RemoteDeltaKind uint8

const (
	RemoteLikes RemoteDeltaKind = iota
	RemoteComments
	RemoteRetweets
	RemoteBookmarks
)

func (s *State) applyRemoteDelta(kind RemoteDeltaKind, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case RemoteLikes:
		if s.inFlight[opLike] {
			return
		}
		s.likes = max(0, s.likes+delta)
	case RemoteComments:
		if s.inFlight[opComment] {
			return
		}
		s.comments = max(0, s.comments+delta)
	case RemoteRetweets:
		if s.inFlight[opRetweet] {
			return
		}
		s.retweets = max(0, s.retweets+delta)
	case RemoteBookmarks:
		if s.inFlight[opBookmark] {
			return
		}
		s.bookmarks = max(0, s.bookmarks+delta)
	}
}
