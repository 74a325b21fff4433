package vkr

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// The renderer distinguishes exactly one recoverable fault class: swapchain
// staleness during acquire or present, which is handled internally by
// recreating the chain. Every other error below is fatal to the render loop
// and should unwind the whole renderer.
var (
	// ErrUnsupportedFeature indicates a requested layer or extension is not
	// available on this host.
	ErrUnsupportedFeature = errors.New("vkr: requested feature not supported")

	// ErrNoGPUFound indicates no Vulkan capable device was enumerated at all.
	ErrNoGPUFound = errors.New("vkr: no GPU with Vulkan support found")

	// ErrNoSuitableGPU indicates devices exist but none satisfies the
	// renderer's queue, extension and surface requirements.
	ErrNoSuitableGPU = errors.New("vkr: no suitable GPU found")

	ErrDeviceCreation       = errors.New("vkr: logical device creation failed")
	ErrSwapchainCreation    = errors.New("vkr: swapchain creation failed")
	ErrPipelineCreation     = errors.New("vkr: pipeline creation failed")
	ErrCommandRecording     = errors.New("vkr: command buffer recording failed")
	ErrNoSuitableMemoryType = errors.New("vkr: no suitable memory type")
	ErrSubmit               = errors.New("vkr: queue submit failed")
	ErrAcquire              = errors.New("vkr: image acquire failed")
	ErrPresent              = errors.New("vkr: queue present failed")
)

// wrapResult tags a native Vulkan result with one of the sentinel error
// classes above. Returns nil when res is vk.Success.
func wrapResult(sentinel error, res vk.Result) error {
	if err := vk.Error(res); err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return nil
}
