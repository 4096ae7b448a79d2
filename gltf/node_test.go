package gltf

import (
	"math"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestComposeTRSTranslation(t *testing.T) {
	m := composeTRS([3]float64{1, 2, 3}, [4]float64{0, 0, 0, 1}, [3]float64{1, 1, 1})
	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("translation column = %v, want [1 2 3 1]", m[3])
	}
	if m[0][0] != 1 || m[1][1] != 1 || m[2][2] != 1 {
		t.Errorf("rotation block is not identity: %v", m)
	}
}

func TestComposeTRSScale(t *testing.T) {
	m := composeTRS([3]float64{0, 0, 0}, [4]float64{0, 0, 0, 1}, [3]float64{2, 3, 4})
	if m[0][0] != 2 || m[1][1] != 3 || m[2][2] != 4 {
		t.Errorf("scale diagonal = %v %v %v, want 2 3 4", m[0][0], m[1][1], m[2][2])
	}
}

func TestComposeTRSRotation(t *testing.T) {
	// Quarter turn around Z maps X onto Y.
	s := float32(math.Sqrt(0.5))
	m := composeTRS([3]float64{0, 0, 0}, [4]float64{0, 0, float64(s), float64(s)}, [3]float64{1, 1, 1})

	const eps = 1e-5
	if math.Abs(float64(m[0][1]-1)) > eps || math.Abs(float64(m[0][0])) > eps {
		t.Errorf("rotated X axis = %v, want [0 1 0]", m[0])
	}
}

func TestLocalTransformPrefersMatrix(t *testing.T) {
	node := &gltf.Node{
		Matrix:      [16]float64{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 5, 6, 7, 1},
		Translation: [3]float64{100, 100, 100},
	}
	m := localTransform(node)
	if m[0][0] != 2 || m[3][0] != 5 || m[3][1] != 6 || m[3][2] != 7 {
		t.Errorf("matrix transform ignored: %v", m)
	}
}

func TestFlattenNodesWorldTransforms(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "root", Translation: [3]float64{1, 0, 0}, Children: []uint32{1, 2}},
			{Name: "child", Translation: [3]float64{0, 2, 0}, Mesh: gltf.Index(0)},
			{Name: "empty"},
		},
	}
	flat := flattenNodes(doc, []uint32{0})
	if len(flat) != 1 {
		t.Fatalf("flattened %d nodes, want 1 (only mesh carriers)", len(flat))
	}
	node := flat[0]
	if node.Name != "child" || node.mesh != 0 || node.uniformSlot != 0 {
		t.Fatalf("node = %+v", node)
	}
	world := node.WorldTransform
	if world[3][0] != 1 || world[3][1] != 2 {
		t.Errorf("world translation = %v, want parent and child composed", world[3])
	}
}

func TestFlattenNodesAssignsSlots(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Mesh: gltf.Index(0)},
			{Mesh: gltf.Index(1)},
		},
	}
	flat := flattenNodes(doc, []uint32{0, 1})
	if len(flat) != 2 {
		t.Fatalf("flattened %d nodes, want 2", len(flat))
	}
	if flat[0].uniformSlot != 0 || flat[1].uniformSlot != 1 {
		t.Errorf("uniform slots = %d, %d", flat[0].uniformSlot, flat[1].uniformSlot)
	}
}

func TestAlignTo(t *testing.T) {
	if got := alignTo(64, 256); got != 256 {
		t.Errorf("alignTo(64, 256) = %d", got)
	}
	if got := alignTo(64, 64); got != 64 {
		t.Errorf("alignTo(64, 64) = %d", got)
	}
	if got := alignTo(64, 0); got != 64 {
		t.Errorf("alignTo(64, 0) = %d", got)
	}
}
