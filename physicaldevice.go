package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

// QueueFamilies returns all queue families exposed by this device.
func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var queueFamilyCount uint32

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, nil)

	if queueFamilyCount == 0 {
		return nil, nil
	}

	queues := make([]vk.QueueFamilyProperties, queueFamilyCount)

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, queues)

	ret := make([]*QueueFamily, queueFamilyCount)
	for i, queue := range queues {
		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: queue}
		ret[i].VKQueueFamilyProperties.Deref()
	}

	return ret, nil
}

// FindQueueFamilies locates a graphics capable family and a family able to
// present to surface. The indices are computed fresh on every call, they are
// not cached on the device.
func (p *PhysicalDevice) FindQueueFamilies(surface vk.Surface) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{Graphics: noFamily, Present: noFamily}

	families, err := p.QueueFamilies()
	if err != nil {
		return indices, err
	}

	for _, family := range families {
		if indices.Graphics == noFamily && family.IsGraphics() {
			indices.Graphics = family.Index
		}
		if indices.Present == noFamily && family.SupportsPresent(surface) {
			indices.Present = family.Index
		}
		if indices.Complete() {
			break
		}
	}

	return indices, nil
}

// SupportedExtensions returns the device extensions this physical device
// exposes.
func (p *PhysicalDevice) SupportedExtensions() ([]string, error) {
	var count uint32
	err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil))
	if err != nil {
		return nil, err
	}

	ext := make([]vk.ExtensionProperties, count)

	err = vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, ext))
	if err != nil {
		return nil, err
	}

	names := make([]string, count)
	for i := range ext {
		ext[i].Deref()
		names[i] = vk.ToString(ext[i].ExtensionName[:])
	}
	return names, nil
}

// SupportsExtensions reports whether every named extension is available on
// this device.
func (p *PhysicalDevice) SupportsExtensions(names []string) bool {
	supported, err := p.SupportedExtensions()
	if err != nil {
		return false
	}

	missing := make(map[string]struct{})
	for _, name := range names {
		missing[name] = struct{}{}
	}
	for _, name := range supported {
		delete(missing, name)
	}
	return len(missing) == 0
}

// IsSuitable reports whether this device can drive the renderer: it must
// expose a graphics queue, a queue able to present to surface, the swapchain
// extension, and at least one surface format and present mode. The first
// suitable device in enumeration order wins; no scoring is applied.
func (p *PhysicalDevice) IsSuitable(surface vk.Surface) (bool, error) {
	indices, err := p.FindQueueFamilies(surface)
	if err != nil {
		return false, err
	}

	hasExtensions := p.SupportsExtensions([]string{vk.KhrSwapchainExtensionName})

	var support *SurfaceSupport
	if hasExtensions {
		support, err = p.QuerySurfaceSupport(surface)
		if err != nil {
			return false, err
		}
	}

	return suitable(indices, hasExtensions, support), nil
}

// suitable is the pure suitability decision over already queried facts.
func suitable(indices QueueFamilyIndices, hasExtensions bool, support *SurfaceSupport) bool {
	return indices.Complete() && hasExtensions && support.Adequate()
}

// QuerySurfaceSupport collects the surface capabilities, formats and present
// modes this device reports for surface.
func (p *PhysicalDevice) QuerySurfaceSupport(surface vk.Surface) (*SurfaceSupport, error) {
	var caps vk.SurfaceCapabilities
	err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps))
	if err != nil {
		return nil, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	var formatCount uint32
	err = vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &formatCount, nil))
	if err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	if formatCount > 0 {
		err = vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &formatCount, formats))
		if err != nil {
			return nil, err
		}
		for i := range formats {
			formats[i].Deref()
		}
	}

	var modeCount uint32
	err = vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &modeCount, nil))
	if err != nil {
		return nil, err
	}
	modes := make([]vk.PresentMode, modeCount)
	if modeCount > 0 {
		err = vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &modeCount, modes))
		if err != nil {
			return nil, err
		}
	}

	return &SurfaceSupport{
		Capabilities: caps,
		Formats:      formats,
		PresentModes: modes,
	}, nil
}

// MemoryTypes returns the memory types exposed by this device, dereferenced
// and ready for inspection.
func (p *PhysicalDevice) MemoryTypes() []vk.MemoryType {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	ret := make([]vk.MemoryType, 0, memoryProperties.MemoryTypeCount)

	var i uint32
	for i = 0; i < memoryProperties.MemoryTypeCount; i++ {
		mt := memoryProperties.MemoryTypes[i]
		mt.Deref()
		ret = append(ret, mt)
	}
	return ret
}

// FindMemoryType selects a memory type whose index bit is set in
// memoryTypeBits and whose property flags contain all of properties.
func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	return findMemoryTypeIndex(memoryTypeBits, properties, p.MemoryTypes())
}

// findMemoryTypeIndex returns the first index whose bit is set in typeBits
// and whose property flags are a superset of properties.
func findMemoryTypeIndex(typeBits uint32, properties vk.MemoryPropertyFlags, types []vk.MemoryType) (uint32, error) {
	for i, mt := range types {
		if typeBits&(1<<uint32(i)) != 0 &&
			vk.MemoryPropertyFlags(mt.PropertyFlags)&properties == properties {
			return uint32(i), nil
		}
	}
	return 0, ErrNoSuitableMemoryType
}

type CreateDeviceOptions struct {
	EnabledExtensions []string
	EnabledLayers     []string
}

// CreateLogicalDevice creates the logical device plus its graphics and
// present queues. One queue is requested per distinct family index, each with
// priority 1.0.
func (p *PhysicalDevice) CreateLogicalDevice(indices QueueFamilyIndices, options *CreateDeviceOptions) (*Device, error) {
	if !indices.Complete() {
		return nil, fmt.Errorf("%w: queue family indices are incomplete", ErrDeviceCreation)
	}

	families := indices.Distinct()
	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(families))
	for i, family := range families {
		queueCreateInfos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}

	var deviceFeatures vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &deviceFeatures)

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueCreateInfos)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{deviceFeatures},
	}

	if options != nil {
		if options.EnabledExtensions != nil {
			deviceCreateInfo.EnabledExtensionCount = uint32(len(options.EnabledExtensions))
			deviceCreateInfo.PpEnabledExtensionNames = safeStrings(options.EnabledExtensions)
		}
		if options.EnabledLayers != nil {
			deviceCreateInfo.EnabledLayerCount = uint32(len(options.EnabledLayers))
			deviceCreateInfo.PpEnabledLayerNames = safeStrings(options.EnabledLayers)
		}
	}

	var ldevice vk.Device

	if err := wrapResult(ErrDeviceCreation, vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice)); err != nil {
		return nil, err
	}

	var device Device
	device.PhysicalDevice = p
	device.VKDevice = ldevice

	return &device, nil
}
