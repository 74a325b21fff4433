package vkr

import "testing"

func TestFrameTrackerRing(t *testing.T) {
	ft := newFrameTracker(3)

	if ft.Slot() != 0 {
		t.Errorf("expected slot 0, got %d", ft.Slot())
	}

	for i := 0; i < 2*MaxFramesInFlight; i++ {
		ft.Advance()
	}
	if ft.Slot() != 0 {
		t.Errorf("ring should wrap back to 0, got %d", ft.Slot())
	}

	ft.Advance()
	if ft.Slot() != 1 {
		t.Errorf("expected slot 1, got %d", ft.Slot())
	}
}

func TestFrameTrackerImageClaims(t *testing.T) {
	ft := newFrameTracker(3)

	if ft.SlotForImage(1) != noSlot {
		t.Error("unclaimed image should report no slot")
	}

	ft.ClaimImage(1)
	if ft.SlotForImage(1) != 0 {
		t.Errorf("image 1 should be held by slot 0, got %d", ft.SlotForImage(1))
	}

	ft.Advance()
	ft.ClaimImage(1)
	if ft.SlotForImage(1) != 1 {
		t.Errorf("reclaim should move image 1 to slot 1, got %d", ft.SlotForImage(1))
	}
	if ft.SlotForImage(0) != noSlot {
		t.Error("image 0 was never claimed")
	}
}

// At most MaxFramesInFlight images can be claimed by distinct slots at once,
// because there are only that many slots to claim with.
func TestFrameTrackerBoundsOutstandingFrames(t *testing.T) {
	ft := newFrameTracker(4)

	for i := 0; i < 4; i++ {
		ft.ClaimImage(i)
		ft.Advance()
	}

	held := 0
	for i := 0; i < 4; i++ {
		if ft.SlotForImage(i) != noSlot {
			held++
		}
	}
	if held > MaxFramesInFlight {
		t.Errorf("%d images held, limit is %d", held, MaxFramesInFlight)
	}
}

func TestFrameTrackerReset(t *testing.T) {
	ft := newFrameTracker(3)
	ft.ClaimImage(2)
	ft.Advance()

	ft.Reset(5)

	for i := 0; i < 5; i++ {
		if ft.SlotForImage(i) != noSlot {
			t.Errorf("image %d should be unclaimed after reset", i)
		}
	}
	if ft.Slot() != 1 {
		t.Errorf("reset should not disturb the slot cursor, got %d", ft.Slot())
	}
}
