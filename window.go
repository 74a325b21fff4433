package vkr

import (
	"fmt"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Surfacer is the narrow view the renderer has of the windowing system: it
// can mint a native drawable surface for an instance, report the live
// framebuffer size and the instance extensions the platform needs to
// present, and park the calling thread until something happens (used while
// the surface has zero area, e.g. a minimized window).
type Surfacer interface {
	CreateSurface(instance vk.Instance) (vk.Surface, error)
	FramebufferSize() (width, height int)
	RequiredExtensions() []string
	WaitEvents()
}

// Window adapts a GLFW window to the Surfacer interface.
type Window struct {
	GLFWWindow *glfw.Window
}

// NewWindow wraps an existing GLFW window. The window must have been created
// with glfw.ClientAPI set to glfw.NoAPI.
func NewWindow(w *glfw.Window) *Window {
	return &Window{GLFWWindow: w}
}

func (w *Window) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	surfacePtr, err := w.GLFWWindow.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, fmt.Errorf("cannot create surface within GLFW window: %w", err)
	}
	return vk.SurfaceFromPointer(surfacePtr), nil
}

func (w *Window) FramebufferSize() (int, int) {
	return w.GLFWWindow.GetFramebufferSize()
}

func (w *Window) RequiredExtensions() []string {
	return w.GLFWWindow.GetRequiredInstanceExtensions()
}

func (w *Window) WaitEvents() {
	glfw.WaitEvents()
}
