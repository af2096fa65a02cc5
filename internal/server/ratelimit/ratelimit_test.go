package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestBucket_Take(t *testing.T) {
	b := newBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		if !b.take() {
			t.Errorf("expected request %d to be allowed", i+1)
		}
	}

	if b.take() {
		t.Error("expected 11th request to be denied")
	}
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		b.take()
	}

	time.Sleep(1100 * time.Millisecond)

	if !b.take() {
		t.Error("expected request to be allowed after refill")
	}
	if b.take() {
		t.Error("expected request to be denied after consuming refilled token")
	}
}

func TestBucket_Status(t *testing.T) {
	b := newBucket(10, 1.0)

	for i := 0; i < 5; i++ {
		b.take()
	}

	remaining, resetAt := b.status()
	if remaining != 5 {
		t.Errorf("expected 5 remaining tokens, got %d", remaining)
	}
	if resetAt.Before(time.Now()) {
		t.Error("reset time should be in the future")
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	clientID := "127.0.0.1"

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow(clientID, "/api/foo", "GET")
		if !allowed {
			t.Errorf("expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	allowed, info := limiter.Allow(clientID, "/api/foo", "GET")
	if allowed {
		t.Error("expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", info.Remaining)
	}
	if info.RetryAfter <= 0 {
		t.Error("expected retry-after to be positive")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/api/scrapeKeyword", "POST")
		if !allowed {
			t.Errorf("expected whitelisted request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/api/scrapeKeyword", "POST")
	if allowed {
		t.Error("expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/api/scrapeKeyword", "POST")
		if !allowed {
			t.Errorf("expected request %d to be allowed when disabled", i+1)
		}
	}
}

func TestLimiter_ScrapeEndpointLimits(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Keyword scrape allows a burst of 3.
	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow(clientID, "/api/scrapeKeyword", "POST")
		if !allowed {
			t.Errorf("expected scrape request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("expected limit 10, got %d", info.Limit)
		}
	}
	allowed, _ := limiter.Allow(clientID, "/api/scrapeKeyword", "POST")
	if allowed {
		t.Error("expected scrape request past burst to be denied")
	}

	// Downloads match by prefix and carry their own budget.
	allowed, info := limiter.Allow(clientID, "/api/download/results_1700000000000_abcd1234.csv", "GET")
	if !allowed {
		t.Error("expected download request to be allowed")
	}
	if info.Limit != 60 {
		t.Errorf("expected download limit 60, got %d", info.Limit)
	}

	// Health check is never throttled.
	for i := 0; i < 200; i++ {
		allowed, _ := limiter.Allow(clientID, "/health", "GET")
		if !allowed {
			t.Errorf("expected health check %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/api/foo", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/api/foo", "GET")
	if !allowed {
		t.Error("expected request to be allowed with default config")
	}
	if info.Limit != 60 {
		t.Errorf("expected default limit 60, got %d", info.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	if ec := MatchEndpoint("/api/scrapeKeyword", "POST", configs); ec == nil || ec.Limit != 10 {
		t.Errorf("expected exact match with limit 10, got %+v", ec)
	}
	if ec := MatchEndpoint("/api/sheets/results_1_a.csv", "GET", configs); ec == nil || ec.Limit != 60 {
		t.Errorf("expected prefix match with limit 60, got %+v", ec)
	}
	if ec := MatchEndpoint("/health", "GET", configs); ec == nil || ec.Limit != 0 {
		t.Errorf("expected unlimited health config, got %+v", ec)
	}
	if ec := MatchEndpoint("/api/unknown", "GET", configs); ec != nil {
		t.Errorf("expected nil for unmatched path, got %+v", ec)
	}
}
