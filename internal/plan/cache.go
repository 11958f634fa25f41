package plan

import (
	"math"
	"strconv"
	"sync"

	"github.com/myrjola/fitcoach/internal/fitness"
	"golang.org/x/sync/singleflight"
)

const defaultCacheSize = 1024

type cacheKey struct {
	level    Level
	goal     Goal
	bmi      float64
	category fitness.BMICategory
}

func (k cacheKey) String() string {
	return string(k.level) + "|" + string(k.goal) + "|" + strconv.FormatFloat(k.bmi, 'f', -1, 64) + "|" +
		string(k.category)
}

// Cache memoizes [Generate] by its inputs. Concurrent requests for the same inputs share one generation.
//
// The cache forgets everything once it holds maxEntries plans, which keeps memory bounded without bookkeeping.
type Cache struct {
	mu         sync.RWMutex
	plans      map[cacheKey]WeekPlan
	group      singleflight.Group
	maxEntries int
}

// NewCache creates a cache holding at most maxEntries plans. Non-positive values use a default size.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheSize
	}
	return &Cache{
		mu:         sync.RWMutex{},
		plans:      make(map[cacheKey]WeekPlan),
		group:      singleflight.Group{},
		maxEntries: maxEntries,
	}
}

// Generate returns the cached plan for the inputs or generates and stores it. A NaN bmi never equals itself as a
// map key, so those plans are generated without caching.
func (c *Cache) Generate(level Level, goal Goal, bmi float64, category fitness.BMICategory) (WeekPlan, error) {
	if math.IsNaN(bmi) {
		return Generate(level, goal, bmi, category)
	}
	key := cacheKey{level: level, goal: goal, bmi: bmi, category: category}

	c.mu.RLock()
	p, ok := c.plans[key]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		generated, err := Generate(level, goal, bmi, category)
		if err != nil {
			return WeekPlan{}, err
		}
		c.mu.Lock()
		if len(c.plans) >= c.maxEntries {
			clear(c.plans)
		}
		c.plans[key] = generated
		c.mu.Unlock()
		return generated, nil
	})
	if err != nil {
		return WeekPlan{}, err //nolint:wrapcheck // Generate already annotates.
	}
	return v.(WeekPlan), nil //nolint:forcetypeassert // the closure only returns WeekPlan.
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}
