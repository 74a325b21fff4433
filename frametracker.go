package vkr

// MaxFramesInFlight bounds the number of command buffer submissions the CPU
// may have outstanding before it must wait for the GPU to retire one.
const MaxFramesInFlight = 2

// noSlot marks a swapchain image no frame slot is currently using.
const noSlot = -1

// frameTracker is the pure bookkeeping half of the frame synchronizer: the
// current slot in the fixed ring of in flight frames, and which slot last
// submitted against each swapchain image. Keeping it free of native handles
// makes the in flight invariant checkable without a device.
type frameTracker struct {
	current  int
	inFlight []int
}

func newFrameTracker(imageCount int) *frameTracker {
	t := &frameTracker{}
	t.Reset(imageCount)
	return t
}

// SlotForImage returns the slot that last claimed image, or noSlot.
func (t *frameTracker) SlotForImage(image int) int {
	return t.inFlight[image]
}

// ClaimImage records that the current slot's submission now owns image. Any
// image the slot owned before is released; a slot has at most one submission
// outstanding, so a prior mapping to it is stale.
func (t *frameTracker) ClaimImage(image int) {
	for i, slot := range t.inFlight {
		if slot == t.current {
			t.inFlight[i] = noSlot
		}
	}
	t.inFlight[image] = t.current
}

// Slot returns the current frame slot index.
func (t *frameTracker) Slot() int {
	return t.current
}

// Advance moves to the next slot in the ring.
func (t *frameTracker) Advance() {
	t.current = (t.current + 1) % MaxFramesInFlight
}

// Reset drops every image association and resizes the tracker for a rebuilt
// swapchain, whose image count and indices may have changed. The slot cursor
// is kept; the frame slots themselves survive recreation.
func (t *frameTracker) Reset(imageCount int) {
	t.inFlight = make([]int, imageCount)
	for i := range t.inFlight {
		t.inFlight[i] = noSlot
	}
}
