package texture

import (
	"bytes"
	"encoding/binary"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

// buildKTX assembles a minimal valid container with uncompressed RGBA8 data.
func buildKTX(t *testing.T, width, height, mips, arrayElems, faces uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(ktxIdentifier)

	write := func(v uint32) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("writing header: %v", err)
		}
	}
	write(ktxLittleEndian)
	write(0x1401) // glType GL_UNSIGNED_BYTE
	write(1)      // glTypeSize
	write(0x1908) // glFormat GL_RGBA
	write(0x8058) // glInternalFormat GL_RGBA8
	write(0x1908) // glBaseInternalFormat
	write(width)
	write(height)
	write(0) // pixelDepth
	write(arrayElems)
	write(faces)
	write(mips)
	write(0) // bytesOfKeyValueData

	layers := arrayElems
	if layers == 0 {
		layers = 1
	}
	w, h := width, height
	for mip := uint32(0); mip < mips; mip++ {
		faceSize := w * h * 4
		if faces == 6 && arrayElems == 0 {
			write(faceSize)
			for f := uint32(0); f < 6; f++ {
				buf.Write(bytes.Repeat([]byte{byte(mip), byte(f), 0, 0xFF}, int(w*h)))
			}
		} else {
			write(faceSize * layers)
			buf.Write(bytes.Repeat([]byte{byte(mip), 0, 0, 0xFF}, int(w*h*layers)))
		}
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}
	return buf.Bytes()
}

func TestParseKTX2D(t *testing.T) {
	ktx, err := ParseKTX(buildKTX(t, 8, 8, 3, 0, 1))
	if err != nil {
		t.Fatalf("ParseKTX failed: %v", err)
	}
	if ktx.Format != vk.FormatR8g8b8a8Unorm {
		t.Errorf("format %v, want RGBA8 unorm", ktx.Format)
	}
	if ktx.MipCount() != 3 {
		t.Fatalf("mip count %d, want 3", ktx.MipCount())
	}

	wantDims := [][2]uint32{{8, 8}, {4, 4}, {2, 2}}
	for i, want := range wantDims {
		level := ktx.Levels[i]
		if level.Width != want[0] || level.Height != want[1] {
			t.Errorf("mip %d is %dx%d, want %dx%d", i, level.Width, level.Height, want[0], want[1])
		}
		if len(level.Data) != int(want[0]*want[1]*4) {
			t.Errorf("mip %d holds %d bytes, want %d", i, len(level.Data), want[0]*want[1]*4)
		}
	}
}

func TestParseKTXCubeMap(t *testing.T) {
	ktx, err := ParseKTX(buildKTX(t, 4, 4, 1, 0, 6))
	if err != nil {
		t.Fatalf("ParseKTX failed: %v", err)
	}
	if ktx.Faces != 6 {
		t.Fatalf("face count %d, want 6", ktx.Faces)
	}
	level := ktx.Levels[0]
	if len(level.Data) != 4*4*4*6 {
		t.Fatalf("level holds %d bytes, want all six faces", len(level.Data))
	}
	// Face index was encoded into the second byte of every texel.
	faceSize := 4 * 4 * 4
	for f := 0; f < 6; f++ {
		if level.Data[f*faceSize+1] != byte(f) {
			t.Errorf("face %d data out of order", f)
		}
	}
}

func TestParseKTXArray(t *testing.T) {
	ktx, err := ParseKTX(buildKTX(t, 4, 2, 1, 3, 1))
	if err != nil {
		t.Fatalf("ParseKTX failed: %v", err)
	}
	if ktx.ArrayLayers != 3 {
		t.Errorf("layer count %d, want 3", ktx.ArrayLayers)
	}
	if len(ktx.Levels[0].Data) != 4*2*4*3 {
		t.Errorf("level holds %d bytes, want all three layers", len(ktx.Levels[0].Data))
	}
}

func TestParseKTXRejectsGarbage(t *testing.T) {
	if _, err := ParseKTX([]byte("definitely not a texture")); err == nil {
		t.Fatal("expected error for a non-KTX input")
	}
}

func TestParseKTXRejectsUnknownFormat(t *testing.T) {
	raw := buildKTX(t, 2, 2, 1, 0, 1)
	// Patch glInternalFormat (offset: identifier + 4 header words).
	offset := len(ktxIdentifier) + 4*4
	binary.LittleEndian.PutUint32(raw[offset:], 0xFFFF)
	if _, err := ParseKTX(raw); err == nil {
		t.Fatal("expected error for an unmapped internal format")
	}
}

func TestKTXTotalSize(t *testing.T) {
	ktx, err := ParseKTX(buildKTX(t, 4, 4, 2, 0, 1))
	if err != nil {
		t.Fatalf("ParseKTX failed: %v", err)
	}
	want := 4*4*4 + 2*2*4
	if ktx.TotalSize() != want {
		t.Errorf("total size %d, want %d", ktx.TotalSize(), want)
	}
}
