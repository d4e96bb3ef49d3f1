package news

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Service owns the news refresh pipeline: fetch, normalize, cache-replace.
// The daily scheduler and stale read requests both call Refresh; the mutex
// serializes them so two overlapping triggers cannot interleave writes.
type Service struct {
	source     Source
	normalizer *Normalizer
	store      Store
	interval   time.Duration

	mu  sync.Mutex
	now func() time.Time
}

func NewService(source Source, normalizer *Normalizer, store Store, interval time.Duration) *Service {
	return &Service{
		source:     source,
		normalizer: normalizer,
		store:      store,
		interval:   interval,
		now:        time.Now,
	}
}

// NeedsRefresh reports whether the cache is stale: no refresh has ever been
// recorded, or at least the configured interval has elapsed since the last.
func (s *Service) NeedsRefresh() bool {
	ts, err := s.store.ReadTimestamp()
	if err != nil {
		return true
	}
	return s.now().Sub(ts) >= s.interval
}

// Refresh runs the whole pipeline and atomically replaces the cached set.
// It is idempotent; on any error the previous cache is left intact.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching news: %w", err)
	}

	articles := s.normalizer.Normalize(ctx, raw)

	if err := s.store.ReplaceAll(articles); err != nil {
		return fmt.Errorf("replacing news cache: %w", err)
	}

	logrus.Infof("news cache refreshed with %d articles", len(articles))
	return nil
}

// Articles serves the cached article set, refreshing inline first when the
// freshness policy says so. A failed refresh is logged and the previous
// (possibly empty) cache is served instead of an error.
func (s *Service) Articles(ctx context.Context) ([]Article, error) {
	if s.NeedsRefresh() {
		if err := s.Refresh(ctx); err != nil {
			logrus.Warnf("inline news refresh failed, serving cached articles: %v", err)
		}
	}

	articles, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []Article{}
	}
	return articles, nil
}
