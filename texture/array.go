package texture

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// LoadArray reads a KTX array texture into a sampled 2D array image. Each
// array element becomes one layer of the view.
func LoadArray(dev *vkbase.Device, path string) (*Texture, error) {
	ktx, err := LoadKTX(path)
	if err != nil {
		return nil, err
	}
	if ktx.ArrayLayers < 2 {
		return nil, vkbase.ErrUnsupported("a single layer container as a texture array")
	}
	if ktx.Faces != 1 {
		return nil, vkbase.ErrUnsupported("a cube map container as a texture array")
	}
	return upload(dev, ktx, vk.ImageViewType2dArray, 0)
}
