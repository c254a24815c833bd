package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"humantask/backend/metrics"
	"humantask/directory"
	"humantask/internal/metrickeys"
)

const cacheKey = "users"

// cachedDirectory wraps a user directory and caches the listed identities
// for a bounded time. Directory lookups happen once per task creation, so a
// short TTL keeps assignments fresh while avoiding repeated full scans when
// many tasks are created in a burst.
type cachedDirectory struct {
	inner directory.UserDirectory
	mc    metrics.Client
	c     *ttlcache.Cache[string, []directory.ClaimsIdentity]
}

var _ directory.UserDirectory = (*cachedDirectory)(nil)

func NewCachedDirectory(inner directory.UserDirectory, mc metrics.Client, ttl time.Duration) *cachedDirectory {
	c := ttlcache.New(
		ttlcache.WithTTL[string, []directory.ClaimsIdentity](ttl),
		ttlcache.WithDisableTouchOnHit[string, []directory.ClaimsIdentity](),
	)

	return &cachedDirectory{
		inner: inner,
		mc:    mc,
		c:     c,
	}
}

func (cd *cachedDirectory) ListUsers(ctx context.Context) ([]directory.ClaimsIdentity, error) {
	if item := cd.c.Get(cacheKey); item != nil {
		cd.mc.Counter(metrickeys.DirectoryCacheHit, metrics.Tags{}, 1)
		return item.Value(), nil
	}

	users, err := cd.inner.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	cd.mc.Counter(metrickeys.DirectoryCacheMiss, metrics.Tags{}, 1)
	cd.c.Set(cacheKey, users, ttlcache.DefaultTTL)

	return users, nil
}

// Invalidate drops the cached identity set.
func (cd *cachedDirectory) Invalidate() {
	cd.c.Delete(cacheKey)
}

// StartEviction runs background expiry until ctx is done.
func (cd *cachedDirectory) StartEviction(ctx context.Context) {
	go cd.c.Start()

	<-ctx.Done()

	cd.c.Stop()
}
