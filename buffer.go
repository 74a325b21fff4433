package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// Buffer is a hunk of data bound to device memory, used here for vertex data
// and its staging copies.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
}

func (d *Device) CreateBufferWithOptions(sizeInBytes uint64, usage vk.BufferUsageFlags, sharing vk.SharingMode) (*Buffer, error) {

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       usage,
		SharingMode: sharing,
	}

	var buffer vk.Buffer
	err := vk.Error(vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer))
	if err != nil {
		return nil, err
	}

	var ret Buffer
	ret.VKBuffer = buffer
	ret.Device = d
	ret.Size = sizeInBytes

	return &ret, nil
}

type AllocationRequirements struct {
	Size           int
	MemoryTypeBits uint32
}

func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &memoryRequirements)
	return memoryRequirements
}

func (b *Buffer) AllocationRequirements() *AllocationRequirements {
	memoryRequirements := b.VKMemoryRequirements()
	mr := &memoryRequirements
	mr.Deref()

	return &AllocationRequirements{
		Size:           int(mr.Size),
		MemoryTypeBits: mr.MemoryTypeBits,
	}
}

func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return vk.Error(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)))
}

func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
}

// CreateAndBindBufferAndMemory creates a buffer and allocates and binds
// memory satisfying its requirements in one step.
func (d *Device) CreateAndBindBufferAndMemory(size uint64, usage vk.BufferUsageFlags, mprops vk.MemoryPropertyFlags) (*Buffer, *DeviceMemory, error) {

	buffer, err := d.CreateBufferWithOptions(size, usage, vk.SharingModeExclusive)
	if err != nil {
		return nil, nil, err
	}
	memory, err := d.AllocateForBuffer(buffer, mprops)
	if err != nil {
		buffer.Destroy()
		return nil, nil, err
	}
	if err := buffer.Bind(memory, 0); err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, nil, err
	}
	return buffer, memory, nil
}

// CreateDeviceLocalBuffer uploads data into device local memory through a
// temporary host visible staging buffer. The copy is issued as a one time
// command buffer on queue and waited on synchronously; the staging pair is
// destroyed before returning.
func (d *Device) CreateDeviceLocalBuffer(data []byte, usage vk.BufferUsageFlags, pool *CommandPool, queue *Queue) (*Buffer, *DeviceMemory, error) {
	size := uint64(len(data))

	staging, stagingMemory, err := d.CreateAndBindBufferAndMemory(size,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		stagingMemory.Destroy()
		staging.Destroy()
	}()

	if err := stagingMemory.MapCopyUnmap(data); err != nil {
		return nil, nil, err
	}

	buffer, memory, err := d.CreateAndBindBufferAndMemory(size,
		usage|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return nil, nil, err
	}

	cmd, err := pool.AllocateBuffer()
	if err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, nil, err
	}
	defer pool.FreeBuffer(cmd)

	if err := cmd.BeginOneTime(); err == nil {
		cmd.CmdCopyBuffer(staging, buffer, size)
		err = cmd.End()
	}
	if err == nil {
		err = queue.SubmitWaitIdle(cmd)
	}
	if err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, nil, err
	}

	return buffer, memory, nil
}
