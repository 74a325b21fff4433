package vkr

import (
	"testing"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
	lin "github.com/xlab/linmath"
)

func TestVertexBindingDescription(t *testing.T) {
	b := VertexData{}.GetBindingDescription()

	if b.Binding != 0 {
		t.Errorf("expected binding 0, got %d", b.Binding)
	}
	if b.Stride != uint32(unsafe.Sizeof(Vertex{})) {
		t.Errorf("stride %d does not match the host struct", b.Stride)
	}
	if b.InputRate != vk.VertexInputRateVertex {
		t.Error("expected per vertex input rate")
	}
}

func TestVertexAttributeDescriptions(t *testing.T) {
	attrs := VertexData{}.GetAttributeDescriptions()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}

	if attrs[0].Location != 0 || attrs[0].Format != vk.FormatR32g32Sfloat {
		t.Error("position attribute mismatch")
	}
	if attrs[0].Offset != uint32(unsafe.Offsetof(Vertex{}.Pos)) {
		t.Errorf("position offset %d does not match the host struct", attrs[0].Offset)
	}

	if attrs[1].Location != 1 || attrs[1].Format != vk.FormatR32g32b32Sfloat {
		t.Error("color attribute mismatch")
	}
	if attrs[1].Offset != uint32(unsafe.Offsetof(Vertex{}.Color)) {
		t.Errorf("color offset %d does not match the host struct", attrs[1].Offset)
	}
}

func TestVertexDataBytes(t *testing.T) {
	v := VertexData{
		{Pos: lin.Vec2{0, -0.5}, Color: lin.Vec3{1, 0, 0}},
		{Pos: lin.Vec2{0.5, 0.5}, Color: lin.Vec3{0, 1, 0}},
	}

	raw := v.Bytes()
	if len(raw) != 2*int(unsafe.Sizeof(Vertex{})) {
		t.Errorf("expected %d bytes, got %d", 2*int(unsafe.Sizeof(Vertex{})), len(raw))
	}
}
