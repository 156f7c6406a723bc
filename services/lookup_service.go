package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Vikesh2608/EagleReach/cache"
	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
	"github.com/Vikesh2608/EagleReach/providers"
)

// OfficialsResolver resolves officials from upstream providers.
// This allows us to use mock implementations in tests.
type OfficialsResolver interface {
	Officials(ctx context.Context, address string) ([]providers.Official, error)
}

// Ensure the provider resolver implements OfficialsResolver
var _ OfficialsResolver = (*providers.Resolver)(nil)

// DemoOfficials are returned in demo mode without any upstream calls
var DemoOfficials = []providers.Official{
	{
		Level:  providers.LevelFederal,
		Office: "US Senator",
		Name:   "Richard J. Durbin",
		URLs:   []string{"https://www.durbin.senate.gov/"},
	},
	{
		Level:  providers.LevelFederal,
		Office: "US Senator",
		Name:   "Tammy Duckworth",
		URLs:   []string{"https://www.duckworth.senate.gov/"},
	},
	{
		Level:  providers.LevelFederal,
		Office: "US Representative",
		Name:   "Nikki Budzinski",
		URLs:   []string{"https://budzinski.house.gov/"},
	},
}

// LookupService resolves officials for an address, caching results per raw
// address string and short-circuiting to canned data in demo mode.
type LookupService struct {
	resolver OfficialsResolver
	cache    cache.OfficialsCache
	demoMode bool
}

// NewLookupService creates a new lookup service
func NewLookupService(resolver OfficialsResolver, officialsCache cache.OfficialsCache, demoMode bool) *LookupService {
	return &LookupService{
		resolver: resolver,
		cache:    officialsCache,
		demoMode: demoMode,
	}
}

// GetOfficials returns the officials for an address
func (s *LookupService) GetOfficials(ctx context.Context, address string) ([]providers.Official, error) {
	// Fast demo path: no upstream calls
	if s.demoMode {
		slog.Info("Returning demo officials", "address", address)
		return DemoOfficials, nil
	}

	if officials, ok := s.cache.Get(ctx, address); ok {
		monitoring.RecordCacheEvent(ctx, "officials", true)
		return officials, nil
	}
	monitoring.RecordCacheEvent(ctx, "officials", false)

	start := time.Now()
	officials, err := s.resolver.Officials(ctx, address)
	monitoring.RecordLookupDuration(ctx, "providers", time.Since(start))
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, address, officials)
	return officials, nil
}
