package dedup

import (
	"context"
	"log"
	"time"

	"newslens/config"
	"newslens/types"

	"github.com/redis/go-redis/v9"
)

// SeenFilter remembers article URLs across restarts so repeat items can be
// flagged. It is optional: with no Redis configured, or when Redis is
// unreachable, every operation is a no-op.
type SeenFilter struct {
	redis *redis.Client
}

// NewSeenFilter connects to Redis at addr. An empty addr disables the
// filter. A failed ping logs a warning and disables the filter instead of
// failing startup.
func NewSeenFilter(addr, password string) *SeenFilter {
	if addr == "" {
		return &SeenFilter{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis at %s: %v. Seen-filter disabled.", addr, err)
		_ = rdb.Close()
		return &SeenFilter{}
	}

	return &SeenFilter{redis: rdb}
}

// Enabled reports whether the filter has a live Redis connection.
func (f *SeenFilter) Enabled() bool { return f.redis != nil }

// MarkAndFlag records each article URL with a TTL and sets Repeat on
// articles whose URL was already recorded. Redis errors are logged and the
// article is treated as unseen.
func (f *SeenFilter) MarkAndFlag(ctx context.Context, articles []*types.Article) {
	if f.redis == nil {
		return
	}

	for _, a := range articles {
		key := "newslens:seen:" + types.GenerateID(a.URL)
		fresh, err := f.redis.SetNX(ctx, key, a.URL, config.SeenURLTTL).Result()
		if err != nil {
			log.Printf("[%s] seen-filter error for %s: %v", a.Category, a.URL, err)
			continue
		}
		a.Repeat = !fresh
	}
}

// Close releases the Redis connection if one was established.
func (f *SeenFilter) Close() {
	if f.redis != nil {
		_ = f.redis.Close()
	}
}
