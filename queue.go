package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	FamilyIndex int
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return vk.Error(vk.QueueWaitIdle(q.VKQueue))
}

// SubmitWaitIdle submits the buffers without any synchronization primitives
// and blocks until the queue drains. Used for one shot transfer work.
func (q *Queue) SubmitWaitIdle(buffers ...*CommandBuffer) error {
	var submitInfo = vk.SubmitInfo{}
	submitInfo.SType = vk.StructureTypeSubmitInfo
	submitInfo.CommandBufferCount = uint32(len(buffers))

	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}

	submitInfo.PCommandBuffers = b

	err := vk.Error(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, vk.NullFence))
	if err != nil {
		return err
	}

	return vk.Error(vk.QueueWaitIdle(q.VKQueue))
}

// SubmitWithSync submits buffer with the steady state frame synchronization:
// execution waits for wait at the color attachment output stage, signal is
// signalled when rendering completes, and fence becomes signalled once the
// submission retires.
func (q *Queue) SubmitWithSync(buffer *CommandBuffer, wait, signal vk.Semaphore, fence vk.Fence) error {
	submitInfo := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{wait},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{buffer.VKCommandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{signal},
	}}

	return wrapResult(ErrSubmit, vk.QueueSubmit(q.VKQueue, 1, submitInfo, fence))
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s FamilyIndex: %d}", q.Device.String(), q.FamilyIndex)
}
