package vkr

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestFindMemoryTypeIndex(t *testing.T) {
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)

	types := []vk.MemoryType{
		{PropertyFlags: deviceLocal},
		{PropertyFlags: hostVisible},
		{PropertyFlags: deviceLocal | hostVisible},
	}

	// All three types allowed; the first with the right properties wins.
	idx, err := findMemoryTypeIndex(0b111, hostVisible, types)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("expected type 1, got %d", idx)
	}

	// Type 1 excluded by the requirement bits; 2 still qualifies.
	idx, err = findMemoryTypeIndex(0b101, hostVisible, types)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 2 {
		t.Errorf("expected type 2, got %d", idx)
	}

	// No allowed type carries the properties.
	_, err = findMemoryTypeIndex(0b001, hostVisible, types)
	if !errors.Is(err, ErrNoSuitableMemoryType) {
		t.Errorf("expected ErrNoSuitableMemoryType, got %v", err)
	}
}

func TestSuitable(t *testing.T) {
	complete := QueueFamilyIndices{Graphics: 0, Present: 0}
	incomplete := QueueFamilyIndices{Graphics: 0, Present: noFamily}

	support := &SurfaceSupport{
		Formats:      []vk.SurfaceFormat{{Format: vk.FormatB8g8r8a8Srgb}},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
	}

	if !suitable(complete, true, support) {
		t.Error("complete indices, extensions and adequate support should be suitable")
	}
	if suitable(incomplete, true, support) {
		t.Error("missing present family should disqualify")
	}
	if suitable(complete, false, support) {
		t.Error("missing extensions should disqualify")
	}
	if suitable(complete, true, &SurfaceSupport{}) {
		t.Error("inadequate surface support should disqualify")
	}
}
