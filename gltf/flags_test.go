package gltf

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

func TestVertexSize(t *testing.T) {
	cases := []struct {
		flags AttributeFlags
		size  uint32
	}{
		{AttrP, 12},
		{AttrPN, 24},
		{AttrPTe0, 20},
		{AttrPNTe0, 32},
		{AttrAll, 96},
	}
	for _, c := range cases {
		if got := c.flags.VertexSize(); got != c.size {
			t.Errorf("VertexSize(%b) = %d, want %d", c.flags, got, c.size)
		}
	}
}

func TestInputLayoutOffsets(t *testing.T) {
	bindings, attributes := AttrPNTe0.InputLayout()
	if len(bindings) != 1 || bindings[0].Stride != 32 {
		t.Fatalf("bindings = %+v, want single binding with stride 32", bindings)
	}
	want := []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: 0},
		{Location: 1, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: 12},
		{Location: 2, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 24},
	}
	if len(attributes) != len(want) {
		t.Fatalf("attribute count = %d, want %d", len(attributes), len(want))
	}
	for i := range want {
		if attributes[i] != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, attributes[i], want[i])
		}
	}
}

func TestInputLayoutSkipsUnsetFlags(t *testing.T) {
	_, attributes := (AttrPosition | AttrWeights0).InputLayout()
	if len(attributes) != 2 {
		t.Fatalf("attribute count = %d, want 2", len(attributes))
	}
	if attributes[1].Offset != 12 || attributes[1].Location != 1 {
		t.Errorf("weights attribute = %+v, want offset 12 location 1", attributes[1])
	}
	if attributes[1].Format != vk.FormatR32g32b32a32Sfloat {
		t.Errorf("weights format = %v", attributes[1].Format)
	}
}

func TestLoadRejectsEmptyAttributes(t *testing.T) {
	_, err := Load(ModelInfo{Path: "unused.gltf"})
	if err == nil {
		t.Fatal("load with an empty attribute set succeeded")
	}
	if kind := vkbase.KindOf(err); kind != vkbase.KindUnsupported {
		t.Errorf("error kind = %v, want unsupported", kind)
	}
}

func TestAppendPrimitiveInterleaves(t *testing.T) {
	model := &Model{Attributes: AttrPTe0, stride: AttrPTe0.VertexSize()}
	data := &primitiveData{
		positions: [][3]float32{{1, 2, 3}, {4, 5, 6}},
		material:  -1,
	}
	data.texCoords[0] = [][2]float32{{0.5, 0.25}}

	prim := model.appendPrimitive(data, AttrPTe0)
	if prim.indexed {
		t.Fatal("primitive without indices reported as indexed")
	}
	if prim.firstVertex != 0 || prim.vertexCount != 2 {
		t.Errorf("draw range = (%d, %d), want (0, 2)", prim.firstVertex, prim.vertexCount)
	}
	if got := len(model.vertices); got != 2*20 {
		t.Fatalf("vertex bytes = %d, want 40", got)
	}
	// The second vertex has no texcoord entry and falls back to zero.
	if model.VertexCount() != 2 {
		t.Errorf("vertex count = %d, want 2", model.VertexCount())
	}
}

func TestAppendPrimitiveRebasesIndices(t *testing.T) {
	model := &Model{Attributes: AttrP, stride: AttrP.VertexSize()}
	first := &primitiveData{
		positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		indices:   []uint32{0, 1, 2},
		material:  -1,
	}
	second := &primitiveData{
		positions: [][3]float32{{2, 0, 0}, {3, 0, 0}, {2, 1, 0}},
		indices:   []uint32{0, 1, 2},
		material:  -1,
	}
	model.appendPrimitive(first, AttrP)
	prim := model.appendPrimitive(second, AttrP)

	if !prim.indexed || prim.firstIndex != 3 || prim.indexCount != 3 {
		t.Fatalf("second primitive = %+v, want indexed with firstIndex 3", prim)
	}
	want := []uint32{0, 1, 2, 3, 4, 5}
	for i, index := range want {
		if model.indices[i] != index {
			t.Errorf("index %d = %d, want %d", i, model.indices[i], index)
		}
	}
}

func TestMaterialOfOutOfRange(t *testing.T) {
	model := &Model{materials: []MaterialConstants{{MetallicFactor: 0.5}}}
	if got := model.materialOf(0).MetallicFactor; got != 0.5 {
		t.Errorf("material 0 metallic = %v, want 0.5", got)
	}
	if got := model.materialOf(-1); *got != defaultMaterial {
		t.Errorf("missing material = %+v, want default", *got)
	}
	if got := model.materialOf(7); *got != defaultMaterial {
		t.Errorf("out of range material = %+v, want default", *got)
	}
}
