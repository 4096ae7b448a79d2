package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
	"vkbase/unsafer"
)

// ShaderModuleCI builds a vk.ShaderModule from SPIR-V code.
type ShaderModuleCI struct {
	words []uint32
}

// ShaderModule starts a module create info over SPIR-V words.
func ShaderModule(words []uint32) *ShaderModuleCI {
	return &ShaderModuleCI{words: words}
}

// ShaderModuleBytes starts a module create info over raw SPIR-V bytes, as
// read from a .spv file.
func ShaderModuleBytes(code []byte) *ShaderModuleCI {
	return &ShaderModuleCI{words: unsafer.BytesToUint32(code)}
}

// Build creates the shader module.
func (s *ShaderModuleCI) Build(dev vk.Device) (vk.ShaderModule, error) {
	if len(s.words) == 0 {
		return vk.NullShaderModule, vkbase.ErrUnsupported("an empty shader module")
	}
	info := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(s.words)) * 4,
		PCode:    s.words,
	}
	var handle vk.ShaderModule
	if ret := vk.CreateShaderModule(dev, &info, nil, &handle); ret != vk.Success {
		return vk.NullShaderModule, vkbase.ErrCreate("shader module", ret)
	}
	return handle, nil
}

// ShaderStageCI builds one pipeline shader stage.
type ShaderStageCI struct {
	info vk.PipelineShaderStageCreateInfo
}

// ShaderStage starts a stage create info with entry point "main".
func ShaderStage(stage vk.ShaderStageFlagBits, module vk.ShaderModule) *ShaderStageCI {
	return &ShaderStageCI{
		info: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  stage,
			Module: module,
			PName:  "main\x00",
		},
	}
}

// EntryPoint overrides the "main" entry point.
func (s *ShaderStageCI) EntryPoint(name string) *ShaderStageCI {
	s.info.PName = name + "\x00"
	return s
}

// Specialization attaches specialization constants to the stage.
func (s *ShaderStageCI) Specialization(info *vk.SpecializationInfo) *ShaderStageCI {
	s.info.PSpecializationInfo = info
	return s
}

// Stage returns the finished vk struct for pipeline assembly.
func (s *ShaderStageCI) Stage() vk.PipelineShaderStageCreateInfo {
	return s.info
}
