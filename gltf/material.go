package gltf

import (
	"github.com/qmuntal/gltf"

	"vkbase/unsafer"
)

// MaterialConstants is the push constant block a material maps to. The field
// order matches a std430 block of vec4, vec3, float.
type MaterialConstants struct {
	BaseColorFactor [4]float32
	EmissiveFactor  [3]float32
	MetallicFactor  float32
}

// MaterialSize is the byte size of one MaterialConstants block, for pipeline
// layout push constant ranges.
const MaterialSize = 32

var defaultMaterial = MaterialConstants{
	BaseColorFactor: [4]float32{1, 1, 1, 1},
	MetallicFactor:  1,
}

func materialFrom(doc *gltf.Material) MaterialConstants {
	constants := defaultMaterial
	for i, v := range doc.EmissiveFactor {
		constants.EmissiveFactor[i] = float32(v)
	}
	if pbr := doc.PBRMetallicRoughness; pbr != nil {
		base := pbr.BaseColorFactorOrDefault()
		for i, v := range base {
			constants.BaseColorFactor[i] = float32(v)
		}
		constants.MetallicFactor = float32(pbr.MetallicFactorOrDefault())
	}
	return constants
}

// Bytes returns the block ready for vkCmdPushConstants.
func (m *MaterialConstants) Bytes() []byte {
	return unsafer.StructToBytes(m)
}
