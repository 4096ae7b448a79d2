package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// ImageCI builds a vk.Image.
type ImageCI struct {
	info vk.ImageCreateInfo
}

// Image starts a 2D image create info: one mip, one layer, optimal tiling,
// exclusive sharing, undefined initial layout.
func Image(format vk.Format, width, height uint32) *ImageCI {
	return &ImageCI{
		info: vk.ImageCreateInfo{
			SType:         vk.StructureTypeImageCreateInfo,
			ImageType:     vk.ImageType2d,
			Format:        format,
			Extent:        vk.Extent3D{Width: width, Height: height, Depth: 1},
			MipLevels:     1,
			ArrayLayers:   1,
			Samples:       vk.SampleCount1Bit,
			Tiling:        vk.ImageTilingOptimal,
			SharingMode:   vk.SharingModeExclusive,
			InitialLayout: vk.ImageLayoutUndefined,
		},
	}
}

// Usage sets the image usage flags.
func (i *ImageCI) Usage(usage vk.ImageUsageFlags) *ImageCI {
	i.info.Usage = usage
	return i
}

// MipLevels sets the mip level count.
func (i *ImageCI) MipLevels(levels uint32) *ImageCI {
	i.info.MipLevels = levels
	return i
}

// ArrayLayers sets the layer count.
func (i *ImageCI) ArrayLayers(layers uint32) *ImageCI {
	i.info.ArrayLayers = layers
	return i
}

// CubeCompatible marks the image usable as a cube map source. Implies six
// layers per cube.
func (i *ImageCI) CubeCompatible() *ImageCI {
	i.info.Flags = vk.ImageCreateFlags(vk.ImageCreateCubeCompatibleBit)
	return i
}

// Tiling overrides the optimal tiling default.
func (i *ImageCI) Tiling(tiling vk.ImageTiling) *ImageCI {
	i.info.Tiling = tiling
	return i
}

// Samples sets the sample count for multisampled attachments.
func (i *ImageCI) Samples(samples vk.SampleCountFlagBits) *ImageCI {
	i.info.Samples = samples
	return i
}

// Build creates the image.
func (i *ImageCI) Build(dev vk.Device) (vk.Image, error) {
	var handle vk.Image
	if ret := vk.CreateImage(dev, &i.info, nil, &handle); ret != vk.Success {
		return vk.NullImage, vkbase.ErrCreate("image", ret)
	}
	return handle, nil
}

// ImageViewCI builds a vk.ImageView.
type ImageViewCI struct {
	info vk.ImageViewCreateInfo
}

// ImageView starts a 2D color view over image with identity swizzling and a
// full single-mip, single-layer subresource range.
func ImageView(image vk.Image, format vk.Format) *ImageViewCI {
	return &ImageViewCI{
		info: vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		},
	}
}

// Type overrides the 2D view type (arrays, cube maps).
func (v *ImageViewCI) Type(viewType vk.ImageViewType) *ImageViewCI {
	v.info.ViewType = viewType
	return v
}

// Aspect replaces the color aspect, for depth or stencil views.
func (v *ImageViewCI) Aspect(aspect vk.ImageAspectFlags) *ImageViewCI {
	v.info.SubresourceRange.AspectMask = aspect
	return v
}

// SubresourceRange widens the view to several mips or layers.
func (v *ImageViewCI) SubresourceRange(levels, layers uint32) *ImageViewCI {
	v.info.SubresourceRange.LevelCount = levels
	v.info.SubresourceRange.LayerCount = layers
	return v
}

// Build creates the image view.
func (v *ImageViewCI) Build(dev vk.Device) (vk.ImageView, error) {
	var handle vk.ImageView
	if ret := vk.CreateImageView(dev, &v.info, nil, &handle); ret != vk.Success {
		return vk.NullImageView, vkbase.ErrCreate("image view", ret)
	}
	return handle, nil
}

// SamplerCI builds a vk.Sampler.
type SamplerCI struct {
	info vk.SamplerCreateInfo
}

// Sampler starts a linear-filtered, repeat-addressed sampler without
// anisotropy.
func Sampler() *SamplerCI {
	return &SamplerCI{
		info: vk.SamplerCreateInfo{
			SType:        vk.StructureTypeSamplerCreateInfo,
			MagFilter:    vk.FilterLinear,
			MinFilter:    vk.FilterLinear,
			MipmapMode:   vk.SamplerMipmapModeLinear,
			AddressModeU: vk.SamplerAddressModeRepeat,
			AddressModeV: vk.SamplerAddressModeRepeat,
			AddressModeW: vk.SamplerAddressModeRepeat,
			MaxLod:       0,
			BorderColor:  vk.BorderColorFloatOpaqueWhite,
		},
	}
}

// Filters sets the magnification and minification filters.
func (s *SamplerCI) Filters(mag, min vk.Filter) *SamplerCI {
	s.info.MagFilter = mag
	s.info.MinFilter = min
	return s
}

// AddressMode applies one addressing mode on all three axes.
func (s *SamplerCI) AddressMode(mode vk.SamplerAddressMode) *SamplerCI {
	s.info.AddressModeU = mode
	s.info.AddressModeV = mode
	s.info.AddressModeW = mode
	return s
}

// Anisotropy enables anisotropic filtering up to maxAnisotropy. The device
// feature must be enabled.
func (s *SamplerCI) Anisotropy(maxAnisotropy float32) *SamplerCI {
	s.info.AnisotropyEnable = vk.True
	s.info.MaxAnisotropy = maxAnisotropy
	return s
}

// MipRange sets the lod range for mipmapped textures.
func (s *SamplerCI) MipRange(minLod, maxLod float32) *SamplerCI {
	s.info.MinLod = minLod
	s.info.MaxLod = maxLod
	return s
}

// Build creates the sampler.
func (s *SamplerCI) Build(dev vk.Device) (vk.Sampler, error) {
	var handle vk.Sampler
	if ret := vk.CreateSampler(dev, &s.info, nil, &handle); ret != vk.Success {
		return vk.NullSampler, vkbase.ErrCreate("sampler", ret)
	}
	return handle, nil
}

// ImageBarrierCI builds a vk.ImageMemoryBarrier for layout transitions. It
// has no Build; the command recorders consume it directly.
type ImageBarrierCI struct {
	barrier vk.ImageMemoryBarrier
}

// ImageBarrier starts a barrier over the color aspect of image, single mip
// and layer, with both queue family indices ignored.
func ImageBarrier(image vk.Image, oldLayout, newLayout vk.ImageLayout) *ImageBarrierCI {
	return &ImageBarrierCI{
		barrier: vk.ImageMemoryBarrier{
			SType:               vk.StructureTypeImageMemoryBarrier,
			OldLayout:           oldLayout,
			NewLayout:           newLayout,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               image,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		},
	}
}

// Access sets the source and destination access masks.
func (b *ImageBarrierCI) Access(src, dst vk.AccessFlags) *ImageBarrierCI {
	b.barrier.SrcAccessMask = src
	b.barrier.DstAccessMask = dst
	return b
}

// SubresourceRange widens the barrier to several mips or layers.
func (b *ImageBarrierCI) SubresourceRange(levels, layers uint32) *ImageBarrierCI {
	b.barrier.SubresourceRange.LevelCount = levels
	b.barrier.SubresourceRange.LayerCount = layers
	return b
}

// Aspect replaces the color aspect.
func (b *ImageBarrierCI) Aspect(aspect vk.ImageAspectFlags) *ImageBarrierCI {
	b.barrier.SubresourceRange.AspectMask = aspect
	return b
}

// Barrier returns the finished vk struct.
func (b *ImageBarrierCI) Barrier() vk.ImageMemoryBarrier {
	return b.barrier
}
