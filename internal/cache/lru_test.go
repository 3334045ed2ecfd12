package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestLRUCacheExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewLRUCache[int](10, time.Minute).WithClock(clk.now)

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}

	clk.advance(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to expire")
	}
	if c.Size() != 0 {
		t.Fatalf("Size() = %d", c.Size())
	}
}

func TestLRUCacheTouchSlidesExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewLRUCache[string](10, time.Minute).WithClock(clk.now)
	c.Set("s", "session")

	for i := 0; i < 5; i++ {
		clk.advance(40 * time.Second)
		if !c.Touch("s") {
			t.Fatalf("touch %d failed", i)
		}
	}
	if _, ok := c.Get("s"); !ok {
		t.Fatal("touched entry should still be live")
	}
	if c.Touch("missing") {
		t.Fatal("Touch on missing key should report false")
	}
}

func TestLRUCacheCapacityEvictsOldest(t *testing.T) {
	var evicted []string
	c := NewLRUCache[int](2, time.Hour).OnEvict(func(key string, _ int) {
		evicted = append(evicted, key)
	})
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted = %v", evicted)
	}
	c.Delete("a")
	if len(evicted) != 1 {
		t.Fatal("Delete must not run the eviction callback")
	}
}

func TestManagerRunOnce(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewLRUCache[int](10, time.Second).WithClock(clk.now)
	c.Set("a", 1)
	c.Set("b", 2)
	clk.advance(time.Minute)

	m := NewManager(nil)
	m.Register(c)
	if n := m.RunOnce(); n != 2 {
		t.Fatalf("RunOnce() = %d, want 2", n)
	}
	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}
