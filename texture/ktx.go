// Package texture loads KTX texture containers into sampled Vulkan images:
// plain 2D textures, texture arrays and cube maps.
package texture

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// ktxIdentifier opens every KTX 1.1 file.
var ktxIdentifier = []byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

// ktxLittleEndian is the endianness marker as written by a little endian
// producer.
const ktxLittleEndian = 0x04030201

// glInternalFormat values the loader understands, mapped to Vulkan formats.
var glFormatTable = map[uint32]vk.Format{
	0x8058: vk.FormatR8g8b8a8Unorm,       // GL_RGBA8
	0x8C43: vk.FormatR8g8b8a8Srgb,        // GL_SRGB8_ALPHA8
	0x8229: vk.FormatR8Unorm,             // GL_R8
	0x822B: vk.FormatR8g8Unorm,           // GL_RG8
	0x83F1: vk.FormatBc1RgbaUnormBlock,   // GL_COMPRESSED_RGBA_S3TC_DXT1
	0x83F2: vk.FormatBc2UnormBlock,       // GL_COMPRESSED_RGBA_S3TC_DXT3
	0x83F3: vk.FormatBc3UnormBlock,       // GL_COMPRESSED_RGBA_S3TC_DXT5
	0x9274: vk.FormatEtc2R8g8b8UnormBlock,   // GL_COMPRESSED_RGB8_ETC2
	0x9278: vk.FormatEtc2R8g8b8a8UnormBlock, // GL_COMPRESSED_RGBA8_ETC2_EAC
}

// MipLevel is one mip of a KTX container. Data holds every array layer and
// cube face of the level back to back.
type MipLevel struct {
	Width  uint32
	Height uint32
	Data   []byte
}

// KTX is a decoded KTX 1.1 container.
type KTX struct {
	Format      vk.Format
	Width       uint32
	Height      uint32
	ArrayLayers uint32
	Faces       uint32
	Levels      []MipLevel
}

// MipCount returns the number of mip levels.
func (k *KTX) MipCount() uint32 {
	return uint32(len(k.Levels))
}

// TotalSize returns the byte size of all levels together.
func (k *KTX) TotalSize() int {
	size := 0
	for _, level := range k.Levels {
		size += len(level.Data)
	}
	return size
}

// LoadKTX reads and decodes a KTX 1.1 file.
func LoadKTX(path string) (*KTX, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	ktx, err := ParseKTX(raw)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	return ktx, nil
}

// ParseKTX decodes a KTX 1.1 container from memory.
func ParseKTX(raw []byte) (*KTX, error) {
	r := bytes.NewReader(raw)

	identifier := make([]byte, len(ktxIdentifier))
	if _, err := io.ReadFull(r, identifier); err != nil || !bytes.Equal(identifier, ktxIdentifier) {
		return nil, errors.New("not a KTX 1.1 container")
	}

	var header struct {
		Endianness           uint32
		GLType               uint32
		GLTypeSize           uint32
		GLFormat             uint32
		GLInternalFormat     uint32
		GLBaseInternalFormat uint32
		PixelWidth           uint32
		PixelHeight          uint32
		PixelDepth           uint32
		NumberOfArrayElems   uint32
		NumberOfFaces        uint32
		NumberOfMipmapLevels uint32
		BytesOfKeyValueData  uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "reading KTX header")
	}
	if header.Endianness != ktxLittleEndian {
		return nil, errors.New("big endian KTX containers are not supported")
	}
	if header.PixelDepth > 1 {
		return nil, errors.New("3D KTX textures are not supported")
	}

	format, ok := glFormatTable[header.GLInternalFormat]
	if !ok {
		return nil, errors.Newf("unsupported glInternalFormat %#x", header.GLInternalFormat)
	}

	if _, err := r.Seek(int64(header.BytesOfKeyValueData), io.SeekCurrent); err != nil {
		return nil, errors.Wrap(err, "skipping key/value data")
	}

	layers := header.NumberOfArrayElems
	if layers == 0 {
		layers = 1
	}
	faces := header.NumberOfFaces
	if faces == 0 {
		faces = 1
	}
	mips := header.NumberOfMipmapLevels
	if mips == 0 {
		mips = 1
	}

	ktx := &KTX{
		Format:      format,
		Width:       header.PixelWidth,
		Height:      header.PixelHeight,
		ArrayLayers: layers,
		Faces:       faces,
		Levels:      make([]MipLevel, 0, mips),
	}

	width, height := header.PixelWidth, header.PixelHeight
	for mip := uint32(0); mip < mips; mip++ {
		var imageSize uint32
		if err := binary.Read(r, binary.LittleEndian, &imageSize); err != nil {
			return nil, errors.Wrapf(err, "reading size of mip %d", mip)
		}

		level := MipLevel{Width: width, Height: height}
		if faces == 6 && layers == 1 {
			// Non-array cube maps store each face separately, padded to
			// four bytes.
			facePadded := (imageSize + 3) &^ 3
			level.Data = make([]byte, 0, imageSize*6)
			face := make([]byte, facePadded)
			for f := 0; f < 6; f++ {
				if _, err := io.ReadFull(r, face); err != nil {
					return nil, errors.Wrapf(err, "reading face %d of mip %d", f, mip)
				}
				level.Data = append(level.Data, face[:imageSize]...)
			}
		} else {
			level.Data = make([]byte, imageSize)
			if _, err := io.ReadFull(r, level.Data); err != nil {
				return nil, errors.Wrapf(err, "reading data of mip %d", mip)
			}
			// Mip padding to a four byte boundary.
			if pad := (4 - imageSize%4) % 4; pad > 0 {
				if _, err := r.Seek(int64(pad), io.SeekCurrent); err != nil {
					return nil, errors.Wrapf(err, "skipping padding of mip %d", mip)
				}
			}
		}
		ktx.Levels = append(ktx.Levels, level)

		if width > 1 {
			width /= 2
		}
		if height > 1 {
			height /= 2
		}
	}

	return ktx, nil
}
