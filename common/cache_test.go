package common_test

import (
	"testing"
	"time"

	"github.com/polarsquad/ecoestate/common"
)

func TestNewCache_Validation(t *testing.T) {
	if _, err := common.NewCache[string]("", time.Minute); err == nil {
		t.Error("expected error for empty cache name")
	}
	if _, err := common.NewCache[string]("prices", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
	if _, err := common.NewCache[string]("prices", -time.Second); err == nil {
		t.Error("expected error for negative ttl")
	}
	c, err := common.NewCache[string]("prices", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "prices" {
		t.Errorf("expected name 'prices', got %q", c.Name())
	}
}

func TestCache_SetGet(t *testing.T) {
	c, _ := common.NewCache[string]("test", time.Minute)

	c.Set("foo", "bar")
	val, found := c.Get("foo")
	if !found {
		t.Fatal("expected 'foo' to be in cache, not found")
	}
	if val != "bar" {
		t.Errorf("expected 'bar', got %s", val)
	}

	if _, found := c.Get("unknown"); found {
		t.Error("expected miss for unknown key")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, _ := common.NewCache[string]("test", time.Minute)

	now := time.Now()
	c.SetNowForTest(func() time.Time { return now })

	c.Set("k", "v")
	if _, found := c.Get("k"); !found {
		t.Fatal("expected hit immediately after Set")
	}

	// advance the clock past the ttl
	now = now.Add(time.Minute + time.Second)
	if _, found := c.Get("k"); found {
		t.Error("expected miss after ttl elapsed")
	}
	// a Get that observes expiry must sweep the entry
	if c.Len() != 0 {
		t.Errorf("expected Len 0 after expired Get, got %d", c.Len())
	}
}

func TestCache_SetResetsAge(t *testing.T) {
	c, _ := common.NewCache[string]("test", time.Minute)

	now := time.Now()
	c.SetNowForTest(func() time.Time { return now })

	c.Set("k", "old")
	now = now.Add(2 * time.Minute)
	c.Set("k", "new")

	val, found := c.Get("k")
	if !found {
		t.Fatal("expected hit after re-Set of expired entry")
	}
	if val != "new" {
		t.Errorf("expected 'new', got %s", val)
	}
}

// A stored nil pointer is a present value, distinct from a miss.
func TestCache_NilValueIsPresent(t *testing.T) {
	c, _ := common.NewCache[*string]("test", time.Minute)

	c.Set("k", nil)
	val, found := c.Get("k")
	if !found {
		t.Fatal("expected nil value to be present")
	}
	if val != nil {
		t.Errorf("expected nil value, got %v", val)
	}

	if _, found := c.Get("other"); found {
		t.Error("expected miss for key never set")
	}
}

func TestCache_Delete(t *testing.T) {
	c, _ := common.NewCache[int]("test", time.Minute)

	c.Set("k", 1)
	if !c.Delete("k") {
		t.Error("expected Delete to report existing entry")
	}
	if c.Delete("k") {
		t.Error("expected Delete to report missing entry")
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after Delete")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := common.NewCache[int]("test", time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	if c.Len() != 2 {
		t.Fatalf("expected Len 2, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected Len 0 after Clear, got %d", c.Len())
	}
	// idempotent
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected Len 0 after second Clear, got %d", c.Len())
	}
}

// Len counts expired-but-unswept entries: eviction is lazy, on access only.
func TestCache_LenCountsUnsweptEntries(t *testing.T) {
	c, _ := common.NewCache[int]("test", time.Minute)

	now := time.Now()
	c.SetNowForTest(func() time.Time { return now })

	c.Set("a", 1)
	c.Set("b", 2)
	now = now.Add(2 * time.Minute)

	if c.Len() != 2 {
		t.Errorf("expected Len 2 before any access, got %d", c.Len())
	}
	c.Get("a")
	if c.Len() != 1 {
		t.Errorf("expected Len 1 after sweeping 'a', got %d", c.Len())
	}
}
