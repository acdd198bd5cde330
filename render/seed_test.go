package render

import "testing"

// TestRandomSeedBounds verifies generated seeds stay within the valid
// 32-bit range.
func TestRandomSeedBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := RandomSeed()
		if s < 0 || s >= MaxSeed {
			t.Fatalf("RandomSeed() = %d, want [0, %d)", s, MaxSeed)
		}
	}
}

// TestFixSeed verifies negative markers are replaced and concrete seeds are
// left alone.
func TestFixSeed(t *testing.T) {
	req := DefaultRequest()
	req.Seed = -1
	req.SubSeed = -1
	FixSeed(req)
	if req.Seed < 0 {
		t.Errorf("Seed = %d, want non-negative", req.Seed)
	}
	if req.SubSeed < 0 {
		t.Errorf("SubSeed = %d, want non-negative", req.SubSeed)
	}

	req2 := DefaultRequest()
	req2.Seed = 42
	req2.SubSeed = 7
	FixSeed(req2)
	if req2.Seed != 42 || req2.SubSeed != 7 {
		t.Errorf("concrete seeds changed: %d, %d", req2.Seed, req2.SubSeed)
	}
}
