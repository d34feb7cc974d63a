package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("openai") {
			t.Errorf("Expected call %d within burst to be allowed", i)
		}
	}
	if l.Allow("openai") {
		t.Error("Expected call beyond burst to be denied")
	}
}

func TestLimiter_IndependentProviders(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("openai") {
		t.Error("Expected first openai call allowed")
	}
	if !l.Allow("replicate") {
		t.Error("Expected replicate to have its own bucket")
	}
}

func TestLimiter_SetProviderRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetProviderRate("replicate", 100, 10)

	allowed := 0
	for i := 0; i < 10; i++ {
		if l.Allow("replicate") {
			allowed++
		}
	}
	if allowed != 10 {
		t.Errorf("Expected all 10 calls within custom burst, got %d", allowed)
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	// Drain the single burst token
	if err := l.Wait(context.Background(), "slow"); err != nil {
		t.Fatalf("Expected first wait to pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "slow"); err == nil {
		t.Error("Expected context deadline error while rate limited")
	}
}
