package data

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// MemoryCache implements BarCache using in-memory storage
type MemoryCache struct {
	cache map[string][]types.PriceBar
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string][]types.PriceBar),
	}
}

// Get retrieves bars from cache if available
func (c *MemoryCache) Get(key string) ([]types.PriceBar, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	bars, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	// Return a copy to keep cached bars immutable
	result := make([]types.PriceBar, len(bars))
	copy(result, bars)
	return result, true
}

// Set stores bars in cache
func (c *MemoryCache) Set(key string, bars []types.PriceBar) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := make([]types.PriceBar, len(bars))
	copy(cached, bars)
	c.cache[key] = cached
}

// Clear removes all cached bars
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache = make(map[string][]types.PriceBar)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}

// CachedProvider wraps another BarProvider with caching
type CachedProvider struct {
	provider BarProvider
	cache    BarCache
	logger   zerolog.Logger
}

// NewCachedProvider creates a caching wrapper around a provider
func NewCachedProvider(provider BarProvider, logger zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
		logger:   logger,
	}
}

// GetName returns the name of the underlying provider with cache indication
func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

// LoadBars loads bars, serving repeated requests from memory
func (p *CachedProvider) LoadBars(source, symbol string) ([]types.PriceBar, error) {
	key := source + "|" + symbol
	if cached, exists := p.cache.Get(key); exists {
		return cached, nil
	}

	bars, err := p.provider.LoadBars(source, symbol)
	if err != nil {
		p.logger.Error().Err(err).Str("source", source).Msg("failed to load bars")
		return nil, err
	}

	p.cache.Set(key, bars)
	p.logger.Info().Str("source", source).Int("bars", len(bars)).Msg("loaded and cached bars")
	return bars, nil
}

// ValidateBars validates bars using the underlying provider
func (p *CachedProvider) ValidateBars(bars []types.PriceBar) error {
	return p.provider.ValidateBars(bars)
}

// ClearCache clears all cached bars
func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}
