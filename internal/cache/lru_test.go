package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRUGetSet(t *testing.T) {
	c := New(3)
	c.Set(`{"Fill":{"Pattern":1}}`, 7)
	c.Set(`{"NumFmt":14}`, 8)

	if id, ok := c.Get(`{"Fill":{"Pattern":1}}`); !ok || id != 7 {
		t.Errorf("Get() = %d, %v; want 7, true", id, ok)
	}
	if _, ok := c.Get(`{}`); ok {
		t.Error("Get() of unknown fingerprint should miss")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	tests := []struct {
		name    string
		touch   []string
		evicted string
	}{
		{"insertion order", nil, "a"},
		{"get refreshes", []string{"a"}, "b"},
		{"set refreshes", []string{"set:a", "set:b"}, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(3)
			c.Set("a", 1)
			c.Set("b", 2)
			c.Set("c", 3)
			for _, k := range tt.touch {
				if len(k) > 4 && k[:4] == "set:" {
					c.Set(k[4:], 10)
				} else {
					c.Get(k)
				}
			}
			c.Set("d", 4)

			if _, ok := c.Get(tt.evicted); ok {
				t.Errorf("%q should have been evicted", tt.evicted)
			}
			if c.Len() != 3 {
				t.Errorf("Len() = %d; want 3", c.Len())
			}
		})
	}
}

func TestLRUUpdateKeepsOneEntry(t *testing.T) {
	c := New(2)
	c.Set("x", 1)
	c.Set("x", 2)

	if id, _ := c.Get("x"); id != 2 {
		t.Errorf("Get() = %d; want 2", id)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestLRUDeleteAndClear(t *testing.T) {
	c := New(4)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	c.Delete("missing")

	if _, ok := c.Get("a"); ok {
		t.Error("a should be gone after Delete()")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear() = %d; want 0", c.Len())
	}
	c.Set("c", 3)
	if id, ok := c.Get("c"); !ok || id != 3 {
		t.Errorf("Get() after Clear() = %d, %v; want 3, true", id, ok)
	}
}

func TestLRUZeroCapacity(t *testing.T) {
	c := New(0)
	c.Set("a", 1)
	c.Set("b", 2)

	if _, ok := c.Get("a"); ok {
		t.Error("a should have been evicted with capacity 1")
	}
	if id, ok := c.Get("b"); !ok || id != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", id, ok)
	}
}

func TestLRUConcurrency(t *testing.T) {
	c := New(100)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(fmt.Sprintf("%d-%d", base, j), j)
			}
		}(i)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get(fmt.Sprintf("%d-%d", base, j))
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d; should not exceed capacity 100", c.Len())
	}
}
