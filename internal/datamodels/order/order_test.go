package order

import "testing"

func TestStatusNextChain(t *testing.T) {
	chain := []Status{StatusNew, StatusInProgress, StatusReady, StatusCompleted}
	for i := 0; i < len(chain)-1; i++ {
		next, ok := chain[i].Next()
		if !ok {
			t.Fatalf("%s should have a successor", chain[i])
		}
		if next != chain[i+1] {
			t.Fatalf("%s successor = %s, want %s", chain[i], next, chain[i+1])
		}
	}
	if _, ok := StatusCompleted.Next(); ok {
		t.Fatalf("completed must be terminal")
	}
}

func TestStatusCanAdvanceTo(t *testing.T) {
	if !StatusNew.CanAdvanceTo(StatusInProgress) {
		t.Fatalf("new -> in_progress must be allowed")
	}
	// 跳跃
	if StatusNew.CanAdvanceTo(StatusReady) {
		t.Fatalf("new -> ready must be rejected")
	}
	if StatusNew.CanAdvanceTo(StatusCompleted) {
		t.Fatalf("new -> completed must be rejected")
	}
	// 回退
	if StatusReady.CanAdvanceTo(StatusInProgress) {
		t.Fatalf("ready -> in_progress must be rejected")
	}
	// 原地
	if StatusReady.CanAdvanceTo(StatusReady) {
		t.Fatalf("ready -> ready must be rejected")
	}
	if StatusCompleted.CanAdvanceTo(StatusNew) {
		t.Fatalf("completed -> new must be rejected")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusInProgress, StatusReady, StatusCompleted} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("cancelled").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestBuyingTypeValid(t *testing.T) {
	if !BuyingTypeSelf.Valid() || !BuyingTypeDelivery.Valid() {
		t.Fatalf("defined buying types should be valid")
	}
	if BuyingType("courier").Valid() {
		t.Fatalf("unknown buying type must be invalid")
	}
}
