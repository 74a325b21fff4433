package vkr

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestChooseFormatPrefersSRGB(t *testing.T) {
	s := &SurfaceSupport{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
	}

	f := s.ChooseFormat()
	if f.Format != vk.FormatB8g8r8a8Srgb {
		t.Errorf("expected B8G8R8A8 SRGB, got %v", f.Format)
	}
}

func TestChooseFormatFallsBackToFirst(t *testing.T) {
	s := &SurfaceSupport{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
	}

	f := s.ChooseFormat()
	if f.Format != vk.FormatR8g8b8a8Unorm {
		t.Errorf("expected first advertised format, got %v", f.Format)
	}
}

func TestChoosePresentMode(t *testing.T) {
	s := &SurfaceSupport{
		PresentModes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox},
	}
	if s.ChoosePresentMode() != vk.PresentModeMailbox {
		t.Error("mailbox should win when advertised")
	}

	s.PresentModes = []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate}
	if s.ChoosePresentMode() != vk.PresentModeFifo {
		t.Error("FIFO is the fallback")
	}
}

func TestChooseExtentFixedByCompositor(t *testing.T) {
	s := &SurfaceSupport{
		Capabilities: vk.SurfaceCapabilities{
			CurrentExtent: vk.Extent2D{Width: 640, Height: 480},
		},
	}

	e := s.ChooseExtent(1920, 1080)
	if e.Width != 640 || e.Height != 480 {
		t.Errorf("expected the compositor's extent, got %dx%d", e.Width, e.Height)
	}
}

func TestChooseExtentClamped(t *testing.T) {
	s := &SurfaceSupport{
		Capabilities: vk.SurfaceCapabilities{
			CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
			MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
		},
	}

	e := s.ChooseExtent(800, 600)
	if e.Width != 800 || e.Height != 600 {
		t.Errorf("in-range size should pass through, got %dx%d", e.Width, e.Height)
	}

	e = s.ChooseExtent(8000, 600)
	if e.Width != 4096 || e.Height != 600 {
		t.Errorf("width should clamp independently, got %dx%d", e.Width, e.Height)
	}

	e = s.ChooseExtent(0, 0)
	if e.Width != 1 || e.Height != 1 {
		t.Errorf("zero size should clamp up to the minimum, got %dx%d", e.Width, e.Height)
	}
}

func TestDesiredImageCount(t *testing.T) {
	// One above the minimum so acquire rarely blocks on the driver.
	if n := desiredImageCount(2, 0); n != 3 {
		t.Errorf("unbounded maximum: expected 3, got %d", n)
	}
	if n := desiredImageCount(2, 2); n != 2 {
		t.Errorf("bounded maximum: expected 2, got %d", n)
	}
	if n := desiredImageCount(2, 8); n != 3 {
		t.Errorf("loose maximum: expected 3, got %d", n)
	}
}

func TestAdequate(t *testing.T) {
	s := &SurfaceSupport{}
	if s.Adequate() {
		t.Error("no formats and no present modes should not be adequate")
	}

	s.Formats = []vk.SurfaceFormat{{Format: vk.FormatB8g8r8a8Srgb}}
	if s.Adequate() {
		t.Error("formats alone should not be adequate")
	}

	s.PresentModes = []vk.PresentMode{vk.PresentModeFifo}
	if !s.Adequate() {
		t.Error("formats plus present modes should be adequate")
	}
}
