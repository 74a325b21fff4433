package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// SurfaceSupport captures what a physical device reports for a presentation
// surface: its capabilities, the supported color formats and the supported
// present modes. It is queried per candidate device and consumed immediately,
// never cached across frames.
type SurfaceSupport struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// Adequate reports whether the surface offers at least one format and one
// present mode. Safe to call on a nil receiver.
func (s *SurfaceSupport) Adequate() bool {
	return s != nil && len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// ChooseFormat prefers 8 bit per channel BGRA with the nonlinear sRGB color
// space, falling back to the first listed format.
func (s *SurfaceSupport) ChooseFormat() vk.SurfaceFormat {
	for _, format := range s.Formats {
		if format.Format == vk.FormatB8g8r8a8Srgb &&
			format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return s.Formats[0]
}

// ChoosePresentMode prefers the low latency mailbox mode and falls back to
// FIFO, which every conforming driver provides.
func (s *SurfaceSupport) ChoosePresentMode() vk.PresentMode {
	for _, mode := range s.PresentModes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// ChooseExtent returns the surface's current extent when the driver fixes it,
// otherwise derives an extent from the live framebuffer size clamped
// componentwise into the surface's supported range.
func (s *SurfaceSupport) ChooseExtent(fbWidth, fbHeight int) vk.Extent2D {
	if s.Capabilities.CurrentExtent.Width != vk.MaxUint32 {
		return s.Capabilities.CurrentExtent
	}

	return vk.Extent2D{
		Width: clampU32(uint32(fbWidth),
			s.Capabilities.MinImageExtent.Width,
			s.Capabilities.MaxImageExtent.Width),
		Height: clampU32(uint32(fbHeight),
			s.Capabilities.MinImageExtent.Height,
			s.Capabilities.MaxImageExtent.Height),
	}
}

// ImageCount requests one image beyond the driver minimum so the renderer
// does not stall waiting on the presentation engine, clamped to the maximum
// when the surface bounds it (a max of zero means unbounded).
func (s *SurfaceSupport) ImageCount() uint32 {
	return desiredImageCount(s.Capabilities.MinImageCount, s.Capabilities.MaxImageCount)
}

func desiredImageCount(minCount, maxCount uint32) uint32 {
	count := minCount + 1
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}
	return count
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
