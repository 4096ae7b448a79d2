package texture

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
	"vkbase/ci"
	"vkbase/command"
)

// Texture is a sampled image with its memory, view and sampler.
type Texture struct {
	Image   vk.Image
	Memory  vk.DeviceMemory
	View    vk.ImageView
	Sampler vk.Sampler

	Format    vk.Format
	Width     uint32
	Height    uint32
	MipLevels uint32
	Layers    uint32

	device vk.Device
}

// Descriptor returns the image info for a combined image sampler descriptor.
func (t *Texture) Descriptor() vk.DescriptorImageInfo {
	return vk.DescriptorImageInfo{
		Sampler:     t.Sampler,
		ImageView:   t.View,
		ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	}
}

// Destroy releases sampler, view, image and memory.
func (t *Texture) Destroy() {
	if t.Sampler != vk.NullSampler {
		vk.DestroySampler(t.device, t.Sampler, nil)
		t.Sampler = vk.NullSampler
	}
	if t.View != vk.NullImageView {
		vk.DestroyImageView(t.device, t.View, nil)
		t.View = vk.NullImageView
	}
	if t.Image != vk.NullImage {
		vk.DestroyImage(t.device, t.Image, nil)
		t.Image = vk.NullImage
	}
	if t.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(t.device, t.Memory, nil)
		t.Memory = vk.NullDeviceMemory
	}
}

// Load2D reads a KTX file into a sampled 2D texture with all its mips.
func Load2D(dev *vkbase.Device, path string) (*Texture, error) {
	ktx, err := LoadKTX(path)
	if err != nil {
		return nil, err
	}
	if ktx.Faces != 1 || ktx.ArrayLayers != 1 {
		return nil, vkbase.ErrUnsupported("a layered container as a 2D texture")
	}
	return upload(dev, ktx, vk.ImageViewType2d, 0)
}

// upload stages the container's data into a device local image, transitions
// it for sampling and builds view and sampler. layerCount 0 means the
// container's layer/face count.
func upload(dev *vkbase.Device, ktx *KTX, viewType vk.ImageViewType, layerCount uint32) (*Texture, error) {
	layers := layerCount
	if layers == 0 {
		layers = ktx.ArrayLayers * ktx.Faces
	}
	mips := ktx.MipCount()

	t := &Texture{
		Format:    ktx.Format,
		Width:     ktx.Width,
		Height:    ktx.Height,
		MipLevels: mips,
		Layers:    layers,
		device:    dev.Handle,
	}

	// One staging buffer holds every level; regions pick it apart.
	staging, err := stagingFor(dev, ktx)
	if err != nil {
		return nil, err
	}
	defer staging.Destroy()

	imageCI := ci.Image(ktx.Format, ktx.Width, ktx.Height).
		Usage(vk.ImageUsageFlags(vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit)).
		MipLevels(mips).
		ArrayLayers(layers)
	if viewType == vk.ImageViewTypeCube {
		imageCI.CubeCompatible()
	}
	if t.Image, err = imageCI.Build(dev.Handle); err != nil {
		return nil, err
	}
	if t.Memory, err = vkbase.BindImageMemory(dev, t.Image,
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)); err != nil {
		t.Destroy()
		return nil, err
	}

	if err = copyStagingToImage(dev, staging, t, ktx); err != nil {
		t.Destroy()
		return nil, err
	}

	view := ci.ImageView(t.Image, ktx.Format).
		Type(viewType).
		SubresourceRange(mips, layers)
	if t.View, err = view.Build(dev.Handle); err != nil {
		t.Destroy()
		return nil, err
	}

	sampler := ci.Sampler().MipRange(0, float32(mips))
	if dev.Phy.EnabledFeatures.SamplerAnisotropy == vk.True {
		sampler.Anisotropy(dev.Phy.Limits.MaxSamplerAnisotropy)
	}
	if t.Sampler, err = sampler.Build(dev.Handle); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

func stagingFor(dev *vkbase.Device, ktx *KTX) (*vkbase.Buffer, error) {
	data := make([]byte, 0, ktx.TotalSize())
	for _, level := range ktx.Levels {
		data = append(data, level.Data...)
	}
	return vkbase.NewStagingBuffer(dev, data)
}

// copyStagingToImage records the layout transitions and per-mip copies and
// flushes them on the transfer queue.
func copyStagingToImage(dev *vkbase.Device, staging *vkbase.Buffer, t *Texture, ktx *KTX) error {
	recorder, err := command.NewTransfer(dev)
	if err != nil {
		return err
	}
	defer recorder.Destroy()

	regions := make([]vk.BufferImageCopy, 0, t.MipLevels)
	offset := vk.DeviceSize(0)
	for mip, level := range ktx.Levels {
		regions = append(regions, vk.BufferImageCopy{
			BufferOffset: offset,
			ImageSubresource: vk.ImageSubresourceLayers{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				MipLevel:   uint32(mip),
				LayerCount: t.Layers,
			},
			ImageExtent: vk.Extent3D{Width: level.Width, Height: level.Height, Depth: 1},
		})
		offset += vk.DeviceSize(len(level.Data))
	}

	toTransfer := ci.ImageBarrier(t.Image, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal).
		Access(0, vk.AccessFlags(vk.AccessTransferWriteBit)).
		SubresourceRange(t.MipLevels, t.Layers)
	toSampling := ci.ImageBarrier(t.Image, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal).
		Access(vk.AccessFlags(vk.AccessTransferWriteBit), vk.AccessFlags(vk.AccessShaderReadBit)).
		SubresourceRange(t.MipLevels, t.Layers)

	recorder.
		ImageBarrier(vk.PipelineStageTopOfPipeBit, vk.PipelineStageTransferBit, toTransfer).
		CopyBufferToImage(staging.Handle, t.Image, regions).
		ImageBarrier(vk.PipelineStageTransferBit, vk.PipelineStageFragmentShaderBit, toSampling)
	return recorder.Flush()
}
