package objmesh

import (
	"strings"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

const quadSource = `
# two triangles sharing an edge, as a single quad face
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestDecodeQuad(t *testing.T) {
	mesh, err := Decode(strings.NewReader(quadSource))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(mesh.Vertices) != 4 {
		t.Fatalf("vertices = %d, want 4", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 6 {
		t.Fatalf("indices = %d, want 6", len(mesh.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, index := range want {
		if mesh.Indices[i] != index {
			t.Errorf("index %d = %d, want %d", i, mesh.Indices[i], index)
		}
	}
}

func TestDecodeSharedVertices(t *testing.T) {
	mesh, err := Decode(strings.NewReader(quadSource))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The fan repeats references 1 and 3; deduplication must fold them.
	counts := make(map[uint32]int)
	for _, index := range mesh.Indices {
		counts[index]++
	}
	if counts[0] != 2 || counts[2] != 2 {
		t.Errorf("shared corner counts = %v, want indices 0 and 2 used twice", counts)
	}
}

func TestDecodeAttributes(t *testing.T) {
	mesh, err := Decode(strings.NewReader(quadSource))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	v := mesh.Vertices[2]
	if v.Position != [3]float32{1, 1, 0} {
		t.Errorf("position = %v, want [1 1 0]", v.Position)
	}
	if v.Normal != [3]float32{0, 0, 1} {
		t.Errorf("normal = %v, want [0 0 1]", v.Normal)
	}
	// V is flipped into top-down texture space.
	if v.TexCoord != [2]float32{1, 0} {
		t.Errorf("texcoord = %v, want [1 0]", v.TexCoord)
	}
}

func TestDecodePositionOnlyFace(t *testing.T) {
	source := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	mesh, err := Decode(strings.NewReader(source))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(mesh.Vertices) != 3 || len(mesh.Indices) != 3 {
		t.Fatalf("got %d vertices, %d indices, want 3 and 3",
			len(mesh.Vertices), len(mesh.Indices))
	}
	if mesh.Vertices[1].Normal != [3]float32{0, 0, 0} {
		t.Errorf("normal = %v, want zero", mesh.Vertices[1].Normal)
	}
}

func TestInputDescription(t *testing.T) {
	bindings, attributes := InputDescription()
	if len(bindings) != 1 || bindings[0].Stride != 32 {
		t.Fatalf("bindings = %+v, want one binding with stride 32", bindings)
	}
	if len(attributes) != 3 {
		t.Fatalf("attributes = %d, want 3", len(attributes))
	}
	if attributes[2].Format != vk.FormatR32g32Sfloat || attributes[2].Offset != 24 {
		t.Errorf("texcoord attribute = %+v", attributes[2])
	}
}
