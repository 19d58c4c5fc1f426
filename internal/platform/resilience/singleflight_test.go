package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroupDoDeduplicates(t *testing.T) {
	var g Group[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("catalog-fetch", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "payload", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if val != "payload" {
				t.Errorf("expected shared payload, got %q", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroupDoSeparateKeys(t *testing.T) {
	var g Group[int]

	a, err, shared := g.Do("a", func() (int, error) { return 1, nil })
	if err != nil || shared {
		t.Fatalf("unexpected result for first key: err=%v shared=%t", err, shared)
	}
	b, err, shared := g.Do("b", func() (int, error) { return 2, nil })
	if err != nil || shared {
		t.Fatalf("unexpected result for second key: err=%v shared=%t", err, shared)
	}
	if a != 1 || b != 2 {
		t.Fatalf("expected distinct results, got %d and %d", a, b)
	}
}
