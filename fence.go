package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// VKCreateFence creates a native vulkan fence, optionally in the signaled
// state. Frame slot fences start signaled so the first wait on a slot does
// not deadlock.
func (d *Device) VKCreateFence(signaled bool) (vk.Fence, error) {
	var fence vk.Fence
	var fenceCreateInfo = vk.FenceCreateInfo{}
	fenceCreateInfo.SType = vk.StructureTypeFenceCreateInfo
	if signaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	err := vk.Error(vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence))
	if err != nil {
		return vk.NullFence, err
	}
	return fence, nil
}

func (d *Device) VKDestroyFence(f vk.Fence) {
	vk.DestroyFence(d.VKDevice, f, nil)
}

// WaitForFence blocks until f is signaled.
func (d *Device) WaitForFence(f vk.Fence) {
	vk.WaitForFences(d.VKDevice, 1, []vk.Fence{f}, vk.True, vk.MaxUint64)
}

// ResetFence returns f to the unsignaled state.
func (d *Device) ResetFence(f vk.Fence) {
	vk.ResetFences(d.VKDevice, 1, []vk.Fence{f})
}
