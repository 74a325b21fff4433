package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Renderer owns the full rendering context for a single window: instance,
// device, swapchain, pipeline, vertex data and the per frame synchronization
// objects. Configure the exported fields, then call Init once, DrawFrame once
// per render tick from the same goroutine, and Destroy on the way out.
//
// See https://vulkan-tutorial.com/ for a walkthrough of the underlying Vulkan
// choreography.
type Renderer struct {
	// Name identifies the application to the driver.
	Name string
	// Debug enables the validation layer and the logging debug callback.
	// Init fails if the layer is requested but not present on the host.
	Debug bool

	// Surface is the windowing collaborator the renderer presents to.
	Surface Surfacer

	// Vertices is the static vertex list drawn every frame. Uploaded to
	// device local memory once during Init.
	Vertices VertexData

	// VertexShader and FragmentShader hold compiled SPIR-V bytecode. How
	// they got compiled or loaded is the caller's business.
	VertexShader   []byte
	FragmentShader []byte

	App      *App
	Instance *Instance

	PhysicalDevice *PhysicalDevice
	Device         *Device

	GraphicsQueue *Queue
	PresentQueue  *Queue

	CommandPool *CommandPool

	vkSurface vk.Surface
	indices   QueueFamilyIndices

	vertexBuffer *Buffer
	vertexMemory *DeviceMemory

	chain *chainGeneration

	frames  []frameSlot
	tracker *frameTracker
	resized bool
}

// frameSlot is one entry in the fixed ring of in flight frames. The slots are
// created once at Init and survive swapchain recreation.
type frameSlot struct {
	imageAvailable vk.Semaphore
	renderFinished vk.Semaphore
	inFlight       vk.Fence
}

// chainGeneration groups every object whose lifetime is tied to one
// incarnation of the swapchain. Recreation destroys and rebuilds the whole
// group atomically instead of patching members in place.
type chainGeneration struct {
	swapchain      *Swapchain
	views          []*ImageView
	renderPass     *RenderPass
	pipelineLayout *PipelineLayout
	pipeline       vk.Pipeline
	framebuffers   []vk.Framebuffer
	commandBuffers []*CommandBuffer
}

// NewRenderer creates a renderer for the given window collaborator.
func NewRenderer(name string, surface Surfacer) *Renderer {
	return &Renderer{
		Name:    name,
		Surface: surface,
	}
}

// NotifyResize tells the renderer the surface changed size. Call it from the
// windowing collaborator's resize callback; the flag is read and cleared on
// the next DrawFrame.
func (r *Renderer) NotifyResize() {
	r.resized = true
}

// Init bootstraps the renderer through first frame readiness: instance,
// device, vertex upload, swapchain generation and sync objects. The Vulkan
// loader must have been initialized (vk.Init) before calling Init.
func (r *Renderer) Init() error {
	if r.Surface == nil {
		return fmt.Errorf("no surface collaborator has been configured")
	}
	if len(r.Vertices) == 0 {
		return fmt.Errorf("no vertex data has been configured")
	}
	if len(r.VertexShader) == 0 || len(r.FragmentShader) == 0 {
		return fmt.Errorf("vertex and fragment shader bytecode must be configured")
	}

	r.App = &App{Name: r.Name, Version: Version{1, 0, 0}}

	for _, ext := range r.Surface.RequiredExtensions() {
		r.App.EnableExtension(ext)
	}
	if r.Debug {
		if err := r.App.EnableDebugging(); err != nil {
			return err
		}
	}

	var err error
	r.Instance, err = r.App.CreateInstance()
	if err != nil {
		return fmt.Errorf("createInstance: %w", err)
	}
	if r.Debug {
		r.Instance.UseDefaultDebugCallback()
	}

	r.vkSurface, err = r.Surface.CreateSurface(r.Instance.VKInstance)
	if err != nil {
		return fmt.Errorf("createSurface: %w", err)
	}

	if err := r.pickPhysicalDevice(); err != nil {
		return fmt.Errorf("pickPhysicalDevice: %w", err)
	}

	if err := r.createDeviceAndQueues(); err != nil {
		return fmt.Errorf("createLogicalDevice: %w", err)
	}

	r.CommandPool, err = r.Device.CreateCommandPool(r.indices.Graphics)
	if err != nil {
		return fmt.Errorf("createCommandPool: %w", err)
	}

	r.vertexBuffer, r.vertexMemory, err = r.Device.CreateDeviceLocalBuffer(
		r.Vertices.Bytes(),
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
		r.CommandPool, r.GraphicsQueue)
	if err != nil {
		return fmt.Errorf("uploadVertexBuffer: %w", err)
	}

	r.chain, err = r.buildChain()
	if err != nil {
		return err
	}

	if err := r.createSyncObjects(); err != nil {
		return fmt.Errorf("createSyncObjects: %w", err)
	}

	r.tracker = newFrameTracker(len(r.chain.commandBuffers))

	return nil
}

// pickPhysicalDevice takes the first suitable device in enumeration order.
// No scoring is applied beyond suitability.
func (r *Renderer) pickPhysicalDevice() error {
	devices, err := r.Instance.PhysicalDevices()
	if err != nil {
		return err
	}

	for _, device := range devices {
		ok, err := device.IsSuitable(r.vkSurface)
		if err != nil {
			return err
		}
		if ok {
			r.PhysicalDevice = device
			return nil
		}
	}

	return ErrNoSuitableGPU
}

func (r *Renderer) createDeviceAndQueues() error {
	var err error

	r.indices, err = r.PhysicalDevice.FindQueueFamilies(r.vkSurface)
	if err != nil {
		return err
	}

	options := &CreateDeviceOptions{
		EnabledExtensions: []string{vk.KhrSwapchainExtensionName},
	}
	if r.Debug {
		options.EnabledLayers = r.App.EnabledLayers
	}

	r.Device, err = r.PhysicalDevice.CreateLogicalDevice(r.indices, options)
	if err != nil {
		return err
	}

	r.GraphicsQueue = r.Device.GetQueue(r.indices.Graphics)
	if r.indices.Graphics == r.indices.Present {
		r.PresentQueue = r.GraphicsQueue
	} else {
		r.PresentQueue = r.Device.GetQueue(r.indices.Present)
	}

	return nil
}

// buildChain constructs one full swapchain generation: chain, views, render
// pass, pipeline, framebuffers and the eagerly recorded command buffers.
func (r *Renderer) buildChain() (*chainGeneration, error) {
	support, err := r.PhysicalDevice.QuerySurfaceSupport(r.vkSurface)
	if err != nil {
		return nil, fmt.Errorf("querySurfaceSupport: %w", err)
	}

	format := support.ChooseFormat()
	mode := support.ChoosePresentMode()
	fbWidth, fbHeight := r.Surface.FramebufferSize()
	extent := support.ChooseExtent(fbWidth, fbHeight)

	c := &chainGeneration{}

	c.swapchain, err = r.Device.CreateSwapchain(r.vkSurface, support, format, mode, extent, r.indices)
	if err != nil {
		return nil, err
	}

	c.views, err = c.swapchain.CreateImageViews()
	if err != nil {
		c.destroy(nil)
		return nil, fmt.Errorf("createImageViews: %w", err)
	}

	c.renderPass, err = r.Device.CreateRenderPass(c.swapchain.Format)
	if err != nil {
		c.destroy(nil)
		return nil, err
	}

	c.pipelineLayout, c.pipeline, err = r.Device.CreateGraphicsPipeline(
		c.renderPass, extent, r.Vertices, r.VertexShader, r.FragmentShader)
	if err != nil {
		c.destroy(nil)
		return nil, err
	}

	if err := r.createFramebuffers(c); err != nil {
		c.destroy(nil)
		return nil, fmt.Errorf("createFramebuffers: %w", err)
	}

	if err := r.recordCommandBuffers(c); err != nil {
		c.destroy(r.CommandPool)
		return nil, err
	}

	return c, nil
}

func (r *Renderer) createFramebuffers(c *chainGeneration) error {
	c.framebuffers = make([]vk.Framebuffer, len(c.views))
	for i, view := range c.views {
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      c.renderPass.VKRenderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{view.VKImageView},
			Width:           c.swapchain.Extent.Width,
			Height:          c.swapchain.Extent.Height,
			Layers:          1,
		}
		err := vk.Error(vk.CreateFramebuffer(r.Device.VKDevice, &fbCreateInfo, nil, &c.framebuffers[i]))
		if err != nil {
			c.framebuffers = c.framebuffers[:i]
			return err
		}
	}
	return nil
}

// recordCommandBuffers allocates one command buffer per framebuffer and
// records the fixed draw sequence into each, once, at setup time. Steady
// state frames submit these buffers as is.
func (r *Renderer) recordCommandBuffers(c *chainGeneration) error {
	var err error
	c.commandBuffers, err = r.CommandPool.AllocateBuffers(len(c.framebuffers))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommandRecording, err)
	}

	for i, cmd := range c.commandBuffers {
		if err := cmd.Begin(); err != nil {
			return fmt.Errorf("%w: begin buffer %d: %v", ErrCommandRecording, i, err)
		}

		cmd.CmdBeginRenderPass(c.renderPass, c.framebuffers[i], c.swapchain.Extent)
		cmd.CmdBindGraphicsPipeline(c.pipeline)
		cmd.CmdBindVertexBuffer(r.vertexBuffer)
		cmd.CmdDraw(len(r.Vertices))
		cmd.CmdEndRenderPass()

		if err := cmd.End(); err != nil {
			return fmt.Errorf("%w: end buffer %d: %v", ErrCommandRecording, i, err)
		}
	}

	return nil
}

// destroy tears the generation down in reverse creation order. When pool is
// non nil the command buffers are freed back to it; at shutdown the pool
// itself is destroyed first and takes its buffers with it.
func (c *chainGeneration) destroy(pool *CommandPool) {
	if pool != nil {
		pool.FreeBuffers(c.commandBuffers)
	}
	c.commandBuffers = nil

	for _, fb := range c.framebuffers {
		vk.DestroyFramebuffer(c.swapchain.Device.VKDevice, fb, nil)
	}
	c.framebuffers = nil

	if c.pipeline != vk.NullPipeline {
		vk.DestroyPipeline(c.swapchain.Device.VKDevice, c.pipeline, nil)
		c.pipeline = vk.NullPipeline
	}
	if c.pipelineLayout != nil {
		c.pipelineLayout.Destroy()
		c.pipelineLayout = nil
	}
	if c.renderPass != nil {
		c.renderPass.Destroy()
		c.renderPass = nil
	}

	for _, view := range c.views {
		view.Destroy()
	}
	c.views = nil

	c.swapchain.Destroy()
}

// recreateChain is the resize and staleness recovery path: wait for a usable
// surface size, drain the device, then rebuild the whole chain generation
// against the new extent. The frame slots are untouched; the image tracker is
// reset because image indices and counts may have changed.
func (r *Renderer) recreateChain() error {
	for {
		width, height := r.Surface.FramebufferSize()
		if width > 0 && height > 0 {
			break
		}
		r.Surface.WaitEvents()
	}

	r.Device.WaitIdle()

	r.chain.destroy(r.CommandPool)

	chain, err := r.buildChain()
	if err != nil {
		return err
	}
	r.chain = chain

	r.tracker.Reset(len(chain.commandBuffers))

	return nil
}

func (r *Renderer) createSyncObjects() error {
	r.frames = make([]frameSlot, MaxFramesInFlight)
	for i := range r.frames {
		var err error
		if r.frames[i].imageAvailable, err = r.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		if r.frames[i].renderFinished, err = r.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		if r.frames[i].inFlight, err = r.Device.VKCreateFence(true); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) destroySyncObjects() {
	for _, frame := range r.frames {
		r.Device.VKDestroySemaphore(frame.imageAvailable)
		r.Device.VKDestroySemaphore(frame.renderFinished)
		r.Device.VKDestroyFence(frame.inFlight)
	}
	r.frames = nil
}

// DrawFrame runs one iteration of the frame protocol: wait for the current
// slot's previous submission, acquire an image, submit the pre recorded
// command buffer and present. Chain staleness reported by acquire or present
// triggers recreation and is never surfaced to the caller; every other
// failure is fatal. Not reentrant; call from a single goroutine.
func (r *Renderer) DrawFrame() error {
	slot := &r.frames[r.tracker.Slot()]

	r.Device.WaitForFence(slot.inFlight)

	var imageIndex uint32
	res := vk.AcquireNextImage(r.Device.VKDevice, r.chain.swapchain.VKSwapchain,
		vk.MaxUint64, slot.imageAvailable, vk.NullFence, &imageIndex)

	if res == vk.ErrorOutOfDate {
		return r.recreateChain()
	}
	if res != vk.Success && res != vk.Suboptimal {
		return fmt.Errorf("%w: %v", ErrAcquire, vk.Error(res))
	}

	// Another slot may still have a submission reading this image; wait for
	// it before reusing the image.
	if prev := r.tracker.SlotForImage(int(imageIndex)); prev != noSlot {
		r.Device.WaitForFence(r.frames[prev].inFlight)
	}
	r.tracker.ClaimImage(int(imageIndex))

	r.Device.ResetFence(slot.inFlight)

	err := r.GraphicsQueue.SubmitWithSync(r.chain.commandBuffers[imageIndex],
		slot.imageAvailable, slot.renderFinished, slot.inFlight)
	if err != nil {
		return err
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{slot.renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{r.chain.swapchain.VKSwapchain},
		PImageIndices:      []uint32{imageIndex},
	}

	res = vk.QueuePresent(r.PresentQueue.VKQueue, &presentInfo)
	if res == vk.ErrorOutOfDate || res == vk.Suboptimal || r.resized {
		r.resized = false
		if err := r.recreateChain(); err != nil {
			return err
		}
	} else if res != vk.Success {
		return fmt.Errorf("%w: %v", ErrPresent, vk.Error(res))
	}

	r.tracker.Advance()

	return nil
}

// Destroy waits for the device to go idle then tears everything down in
// reverse dependency order.
func (r *Renderer) Destroy() {
	if r.Device != nil {
		r.Device.WaitIdle()

		if r.vertexMemory != nil {
			r.vertexMemory.Destroy()
		}
		if r.vertexBuffer != nil {
			r.vertexBuffer.Destroy()
		}

		r.destroySyncObjects()

		if r.CommandPool != nil {
			r.CommandPool.Destroy()
		}

		if r.chain != nil {
			// The pool is already gone and took the command buffers with it.
			r.chain.destroy(nil)
			r.chain = nil
		}

		r.Device.Destroy()
	}

	if r.Instance != nil {
		if r.vkSurface != vk.NullSurface {
			vk.DestroySurface(r.Instance.VKInstance, r.vkSurface, nil)
		}
		r.Instance.Destroy()
	}
}
