// Package catalog serves cached reference data used by filter selects,
// the landing page and the dealers page.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/cache"
	"go.uber.org/zap"
)

const (
	CategoriesTTL  = time.Hour
	StatsTTL       = 5 * time.Minute
	DealershipsTTL = 5 * time.Minute
)

// Source is the part of the backend the catalog reads from.
type Source interface {
	Categories(ctx context.Context) ([]api.Category, error)
	Stats(ctx context.Context) (api.Stats, error)
	Dealerships(ctx context.Context, search string) ([]api.Dealership, error)
}

type Catalog struct {
	src         Source
	categories  *cache.Cache[[]api.Category]
	stats       *cache.Cache[api.Stats]
	dealerships *cache.Cache[[]api.Dealership]
}

func New(src Source) (*Catalog, error) {
	categories, err := cache.New[[]api.Category](func(v []api.Category) int64 {
		return int64(len(v)*64 + 1)
	}, "Category Cache")
	if err != nil {
		return nil, err
	}
	stats, err := cache.New[api.Stats](func(v api.Stats) int64 {
		return int64(len(v.Makes)*16 + 64)
	}, "Stats Cache")
	if err != nil {
		return nil, err
	}
	dealerships, err := cache.New[[]api.Dealership](func(v []api.Dealership) int64 {
		return int64(len(v)*512 + 1)
	}, "Dealership Cache")
	if err != nil {
		return nil, err
	}

	zap.S().Infof("[CACHE] catalog caches initialized")
	return &Catalog{
		src:         src,
		categories:  categories,
		stats:       stats,
		dealerships: dealerships,
	}, nil
}

func (c *Catalog) Categories(ctx context.Context) ([]api.Category, error) {
	const key = "categories:all"
	if cached, found := c.categories.Get(key); found {
		return cached, nil
	}
	cats, err := c.src.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.categories.SetWithTTL(key, cats, 0, CategoriesTTL)
	return cats, nil
}

// CategoryName resolves an ID to a name from the cached list.
func (c *Catalog) CategoryName(ctx context.Context, id int) string {
	cats, err := c.Categories(ctx)
	if err != nil {
		return ""
	}
	for _, cat := range cats {
		if cat.ID == id {
			return cat.Name
		}
	}
	return ""
}

func (c *Catalog) Stats(ctx context.Context) (api.Stats, error) {
	const key = "stats"
	if cached, found := c.stats.Get(key); found {
		return cached, nil
	}
	s, err := c.src.Stats(ctx)
	if err != nil {
		return api.Stats{}, err
	}
	c.stats.SetWithTTL(key, s, 0, StatsTTL)
	return s, nil
}

// Dealerships returns the public dealership list for a search term.
func (c *Catalog) Dealerships(ctx context.Context, search string) ([]api.Dealership, error) {
	key := "dealerships:" + strings.ToLower(strings.TrimSpace(search))
	if cached, found := c.dealerships.Get(key); found {
		return cached, nil
	}
	list, err := c.src.Dealerships(ctx, search)
	if err != nil {
		return nil, err
	}
	c.dealerships.SetWithTTL(key, list, 0, DealershipsTTL)
	return list, nil
}

// Invalidate drops all cached data. Inventory and dealership changes call it.
func (c *Catalog) Invalidate() {
	c.categories.Clear()
	c.stats.Clear()
	c.dealerships.Clear()
	zap.S().Debugf("[CACHE] catalog invalidated")
}

// Wait flushes pending cache writes. Tests use it before reading back.
func (c *Catalog) Wait() {
	c.categories.Wait()
	c.stats.Wait()
	c.dealerships.Wait()
}

func (c *Catalog) Close() {
	c.categories.Close()
	c.stats.Close()
	c.dealerships.Close()
}

// CacheStats reports each cache for the health endpoint.
func (c *Catalog) CacheStats() []map[string]interface{} {
	return []map[string]interface{}{
		c.categories.Stats(),
		c.stats.Stats(),
		c.dealerships.Stats(),
	}
}
