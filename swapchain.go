package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// Swapchain owns the presentable image chain. The images themselves belong to
// the presentation engine and are never freed individually; the per image
// views are owned here and destroyed explicitly.
type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

// GetImages returns the chain's images.
func (s *Swapchain) GetImages() ([]vk.Image, error) {
	var imageCount uint32
	err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil))
	if err != nil {
		return nil, err
	}

	images := make([]vk.Image, imageCount)
	err = vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, images))

	return images, err
}

// CreateImageViews creates one color view per swapchain image.
func (s *Swapchain) CreateImageViews() ([]*ImageView, error) {
	images, err := s.GetImages()
	if err != nil {
		return nil, err
	}

	views := make([]*ImageView, len(images))
	for i, image := range images {
		views[i], err = s.Device.CreateImageView(image, s.Format)
		if err != nil {
			for _, v := range views[:i] {
				v.Destroy()
			}
			return nil, err
		}
	}
	return views, nil
}

// CreateSwapchain builds the image chain from already chosen surface values.
// Images are shared concurrently across the graphics and present families
// only when they differ; a single family keeps exclusive ownership.
func (d *Device) CreateSwapchain(surface vk.Surface, support *SurfaceSupport,
	format vk.SurfaceFormat, mode vk.PresentMode, extent vk.Extent2D,
	indices QueueFamilyIndices) (*Swapchain, error) {

	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    support.ImageCount(),
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		PresentMode:      mode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     support.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
	}

	if indices.Graphics != indices.Present {
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = indices.Distinct()
	} else {
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var swapchain vk.Swapchain

	if err := wrapResult(ErrSwapchainCreation, vk.CreateSwapchain(d.VKDevice, createInfo, nil, &swapchain)); err != nil {
		return nil, err
	}

	var ret Swapchain
	ret.VKSwapchain = swapchain
	ret.Device = d
	ret.Extent = extent
	ret.Format = format.Format

	return &ret, nil
}
