package spirv

import (
	"io/fs"
	"os"

	"vkbase"
	"vkbase/unsafer"
)

// spirvMagic is the first word of every valid SPIR-V module.
const spirvMagic = 0x07230203

// Load reads a precompiled .spv file.
func Load(path string) ([]uint32, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	return FromBytes(code)
}

// LoadFS reads a precompiled .spv file from an embedded or other fs.FS.
func LoadFS(fsys fs.FS, path string) ([]uint32, error) {
	code, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	return FromBytes(code)
}

// FromBytes validates raw SPIR-V bytes and repacks them into words.
func FromBytes(code []byte) ([]uint32, error) {
	if len(code) < 4 || len(code)%4 != 0 {
		return nil, vkbase.ErrShaderc("SPIR-V code length is not a multiple of four")
	}
	words := unsafer.BytesToUint32(code)
	if words[0] != spirvMagic {
		return nil, vkbase.ErrShaderc("missing SPIR-V magic number")
	}
	return words, nil
}
