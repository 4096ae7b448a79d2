package vkbase

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Buffer is a vk.Buffer bound to its own memory allocation.
type Buffer struct {
	Handle vk.Buffer
	Memory vk.DeviceMemory
	Size   vk.DeviceSize

	device vk.Device
	mapped unsafe.Pointer
}

// NewBuffer creates a buffer of size bytes with the given usage, allocates a
// memory block with the requested property flags and binds it.
func NewBuffer(dev *Device, size vk.DeviceSize, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) (*Buffer, error) {
	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	buf := &Buffer{Size: size, device: dev.Handle}
	if ret := vk.CreateBuffer(dev.Handle, &bufferInfo, nil, &buf.Handle); ret != vk.Success {
		return nil, ErrCreate("buffer", ret)
	}

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(dev.Handle, buf.Handle, &requirements)
	requirements.Deref()

	memTypeIndex, err := dev.Phy.MemoryTypeIndex(requirements.MemoryTypeBits, props)
	if err != nil {
		buf.Destroy()
		return nil, err
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: memTypeIndex,
	}
	if ret := vk.AllocateMemory(dev.Handle, &allocInfo, nil, &buf.Memory); ret != vk.Success {
		buf.Destroy()
		return nil, ErrCreate("buffer memory", ret)
	}
	if ret := vk.BindBufferMemory(dev.Handle, buf.Handle, buf.Memory, 0); ret != vk.Success {
		buf.Destroy()
		return nil, ErrDevice("bind buffer memory", ret)
	}
	return buf, nil
}

// NewStagingBuffer creates a host visible, host coherent transfer source
// buffer pre-filled with data.
func NewStagingBuffer(dev *Device, data []byte) (*Buffer, error) {
	buf, err := NewBuffer(dev, vk.DeviceSize(len(data)),
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, err
	}
	if err := buf.Upload(data); err != nil {
		buf.Destroy()
		return nil, err
	}
	return buf, nil
}

// Map keeps the whole buffer mapped until Unmap or Destroy. Requires a host
// visible memory type.
func (b *Buffer) Map() (unsafe.Pointer, error) {
	if b.mapped == nil {
		if ret := vk.MapMemory(b.device, b.Memory, 0, b.Size, 0, &b.mapped); ret != vk.Success {
			return nil, ErrDevice("map buffer memory", ret)
		}
	}
	return b.mapped, nil
}

// Unmap releases a mapping made by Map.
func (b *Buffer) Unmap() {
	if b.mapped != nil {
		vk.UnmapMemory(b.device, b.Memory)
		b.mapped = nil
	}
}

// Upload copies data into the buffer through a transient mapping. A mapping
// held by Map stays mapped.
func (b *Buffer) Upload(data []byte) error {
	persistent := b.mapped != nil
	ptr, err := b.Map()
	if err != nil {
		return err
	}
	vk.Memcopy(ptr, data)
	if !persistent {
		b.Unmap()
	}
	return nil
}

// Descriptor returns the buffer info used in descriptor set updates.
func (b *Buffer) Descriptor() vk.DescriptorBufferInfo {
	return vk.DescriptorBufferInfo{
		Buffer: b.Handle,
		Offset: 0,
		Range:  b.Size,
	}
}

// Destroy unmaps, frees the memory and destroys the buffer.
func (b *Buffer) Destroy() {
	b.Unmap()
	if b.Handle != vk.NullBuffer {
		vk.DestroyBuffer(b.device, b.Handle, nil)
		b.Handle = vk.NullBuffer
	}
	if b.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(b.device, b.Memory, nil)
		b.Memory = vk.NullDeviceMemory
	}
}

// BindImageMemory allocates a memory block satisfying the image's
// requirements with the given property flags and binds it.
func BindImageMemory(dev *Device, image vk.Image, props vk.MemoryPropertyFlags) (vk.DeviceMemory, error) {
	var requirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(dev.Handle, image, &requirements)
	requirements.Deref()

	memTypeIndex, err := dev.Phy.MemoryTypeIndex(requirements.MemoryTypeBits, props)
	if err != nil {
		return vk.NullDeviceMemory, err
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: memTypeIndex,
	}
	var memory vk.DeviceMemory
	if ret := vk.AllocateMemory(dev.Handle, &allocInfo, nil, &memory); ret != vk.Success {
		return vk.NullDeviceMemory, ErrCreate("image memory", ret)
	}
	if ret := vk.BindImageMemory(dev.Handle, image, memory, 0); ret != vk.Success {
		vk.FreeMemory(dev.Handle, memory, nil)
		return vk.NullDeviceMemory, ErrDevice("bind image memory", ret)
	}
	return memory, nil
}
