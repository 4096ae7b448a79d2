package texture

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// LoadCubeMap reads a six-face KTX container into a sampled cube map. The
// faces map to layers in the +X, -X, +Y, -Y, +Z, -Z order KTX stores them.
func LoadCubeMap(dev *vkbase.Device, path string) (*Texture, error) {
	ktx, err := LoadKTX(path)
	if err != nil {
		return nil, err
	}
	if ktx.Faces != 6 {
		return nil, vkbase.ErrUnsupported("a non-cube container as a cube map")
	}
	return upload(dev, ktx, vk.ImageViewTypeCube, 6*ktx.ArrayLayers)
}
