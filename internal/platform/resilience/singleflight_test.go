package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err, _ := g.Do("fixture:1035", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if got != "ok" {
				t.Errorf("unexpected value got=%q want=ok", got)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DoSequentialCallsRunAgain(t *testing.T) {
	var g SingleFlight[int]
	errBoom := errors.New("boom")

	if _, err, _ := g.Do("k", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("expected first call error, got %v", err)
	}
	got, err, shared := g.Do("k", func() (int, error) { return 7, nil })
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if shared {
		t.Fatalf("sequential call must not be shared")
	}
	if got != 7 {
		t.Fatalf("unexpected value got=%d want=7", got)
	}
}
