package pause

import (
	"DriveLine/internal/lib/sl"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
)

// Registry tracks users the assistant must stay silent for. Entries
// expire on their own; pausing an already paused user restarts the clock.
type Registry struct {
	entries *cache.Cache
	log     *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		entries: cache.New(cache.NoExpiration, time.Minute),
		log:     logger.With(sl.Module("pause-registry")),
	}
}

func (r *Registry) IsPaused(userID string) bool {
	_, found := r.entries.Get(userID)
	return found
}

func (r *Registry) Pause(userID string, d time.Duration) {
	r.entries.Set(userID, time.Now().Add(d), d)
	r.log.With(
		slog.String("user", userID),
		slog.Duration("for", d),
	).Debug("assistant paused")
}
