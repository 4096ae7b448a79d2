// Package gltf loads glTF 2.0 models into Vulkan buffers. It reads the
// default scene of a document, interleaves the vertex attributes selected by
// AttributeFlags, flattens the node hierarchy into a dynamic uniform buffer
// of world transforms and maps materials to push constant blocks.
package gltf

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase/ci"
)

// AttributeFlags selects which vertex attributes to read from the glTF
// primitives. The interleaved vertex layout follows the declaration order
// below, skipping unset flags.
type AttributeFlags uint32

const (
	AttrPosition AttributeFlags = 1 << iota
	AttrNormal
	AttrTangent
	AttrTexCoord0
	AttrTexCoord1
	AttrColor0
	AttrJoints0
	AttrWeights0
)

// Common attribute combinations.
const (
	AttrP     = AttrPosition
	AttrPN    = AttrPosition | AttrNormal
	AttrPTe0  = AttrPosition | AttrTexCoord0
	AttrPNTe0 = AttrPosition | AttrNormal | AttrTexCoord0
	AttrAll   = AttrPosition | AttrNormal | AttrTangent | AttrTexCoord0 |
		AttrTexCoord1 | AttrColor0 | AttrJoints0 | AttrWeights0
)

type attributeSpec struct {
	flag   AttributeFlags
	format vk.Format
	size   uint32
}

// Declaration order fixes both the interleaved layout and the shader
// locations.
var attributeSpecs = []attributeSpec{
	{AttrPosition, vk.FormatR32g32b32Sfloat, 12},
	{AttrNormal, vk.FormatR32g32b32Sfloat, 12},
	{AttrTangent, vk.FormatR32g32b32a32Sfloat, 16},
	{AttrTexCoord0, vk.FormatR32g32Sfloat, 8},
	{AttrTexCoord1, vk.FormatR32g32Sfloat, 8},
	{AttrColor0, vk.FormatR32g32b32a32Sfloat, 16},
	{AttrJoints0, vk.FormatR16g16b16a16Unorm, 8},
	{AttrWeights0, vk.FormatR32g32b32a32Sfloat, 16},
}

// Has reports whether all bits of sub are set.
func (f AttributeFlags) Has(sub AttributeFlags) bool {
	return f&sub == sub
}

// VertexSize returns the byte stride of one interleaved vertex.
func (f AttributeFlags) VertexSize() uint32 {
	var size uint32
	for _, spec := range attributeSpecs {
		if f.Has(spec.flag) {
			size += spec.size
		}
	}
	return size
}

// offsetOf returns the byte offset of flag within the interleaved vertex.
func (f AttributeFlags) offsetOf(flag AttributeFlags) uint32 {
	var offset uint32
	for _, spec := range attributeSpecs {
		if spec.flag == flag {
			return offset
		}
		if f.Has(spec.flag) {
			offset += spec.size
		}
	}
	return offset
}

// InputLayout returns the binding and attribute descriptions of the
// interleaved layout. Locations are assigned in declaration order.
func (f AttributeFlags) InputLayout() ([]vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription) {
	bindings := []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    f.VertexSize(),
		InputRate: vk.VertexInputRateVertex,
	}}

	var attributes []vk.VertexInputAttributeDescription
	var offset, location uint32
	for _, spec := range attributeSpecs {
		if !f.Has(spec.flag) {
			continue
		}
		attributes = append(attributes, vk.VertexInputAttributeDescription{
			Location: location,
			Binding:  0,
			Format:   spec.format,
			Offset:   offset,
		})
		offset += spec.size
		location++
	}
	return bindings, attributes
}

// InputDescriptions builds the pipeline vertex input state for the
// interleaved layout.
func (f AttributeFlags) InputDescriptions() *ci.VertexInputSCI {
	bindings, attributes := f.InputLayout()
	return ci.VertexInput(bindings, attributes)
}
