package v0_rest

import (
	"context"
	"net/http"
	"sync"

	"github.com/clapo-social/client-core/pkg/aura"
	"github.com/clapo-social/client-core/pkg/backend"
	"github.com/clapo-social/client-core/pkg/chain"
	"github.com/clapo-social/client-core/pkg/composer"
	"github.com/clapo-social/client-core/pkg/engagement"
	"github.com/clapo-social/client-core/pkg/notifications"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Deps wires the gateway handlers to the engagement registry, the composer
// controllers and the external service clients.
type Deps struct {
	Registry *engagement.Registry
	Backend  *backend.Client
	Aura     *aura.Client
	Chain    *chain.Client
	Wallet   chain.Wallet
	Notifier notifications.Notifier
	Logger   *zap.Logger

	composersMu sync.Mutex
	composers   map[string]*composer.Controller
}

// Composer returns the submission controller owned by the given user's
// composer, creating it on first use.
func (d *Deps) Composer(userId string) *composer.Controller {
	d.composersMu.Lock()
	defer d.composersMu.Unlock()
	if d.composers == nil {
		d.composers = make(map[string]*composer.Controller)
	}
	if c, ok := d.composers[userId]; ok {
		return c
	}
	c := composer.NewController(d.Backend, d.Aura, d.Chain, d.Wallet, d.Notifier, d.Logger)
	d.composers[userId] = c
	return c
}

// DailyLimitReached asks Aura for the user's quota. Downtime fails open so
// a dead reward service cannot block posting.
func (d *Deps) DailyLimitReached(ctx context.Context, userId string) bool {
	reached, err := d.Aura.DailyLimitReached(ctx, userId)
	if err != nil {
		d.Logger.Warn("quota check failed", zap.String("user", userId), zap.Error(err))
		return false
	}
	return reached
}

func Router(deps *Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		returnData(w, http.StatusOK, BaseResp{Error: false})
	})

	r.Post("/posts", deps.createPost)

	r.Route("/posts/{postId}", func(r chi.Router) {
		r.Get("/engagement", deps.getEngagement)
		r.Get("/comments", deps.getComments)
		r.Post("/comments", deps.addComment)

		r.Post("/like", deps.toggleLike)
		r.Post("/retweet", deps.retweet)
		r.Post("/bookmark", deps.toggleBookmark)
	})

	return r
}
