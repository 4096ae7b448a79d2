// Package spirv turns GLSL into the SPIR-V words Vulkan consumes, either by
// invoking the glslc compiler or by loading precompiled .spv files.
package spirv

import (
	"bytes"
	"os/exec"
	"strings"

	"vkbase"
)

// Stage names a shader stage for compilation of sources whose stage cannot
// be inferred from a file extension.
type Stage string

const (
	StageVertex         Stage = "vertex"
	StageFragment       Stage = "fragment"
	StageCompute        Stage = "compute"
	StageGeometry       Stage = "geometry"
	StageTessControl    Stage = "tesscontrol"
	StageTessEvaluation Stage = "tesseval"
)

// OptLevel selects the compiler optimization level.
type OptLevel int

const (
	// OptNone disables optimization.
	OptNone OptLevel = iota
	// OptPerformance optimizes for execution speed.
	OptPerformance
	// OptSize optimizes for code size.
	OptSize
)

// CompileOptions tune the glslc invocation.
type CompileOptions struct {
	Optimization     OptLevel
	DebugInfo        bool
	WarningsAsErrors bool
}

// compilerName is the external compiler; it ships with the Vulkan SDK.
const compilerName = "glslc"

func (o CompileOptions) args() []string {
	var args []string
	switch o.Optimization {
	case OptPerformance:
		args = append(args, "-O")
	case OptSize:
		args = append(args, "-Os")
	default:
		args = append(args, "-O0")
	}
	if o.DebugInfo {
		args = append(args, "-g")
	}
	if o.WarningsAsErrors {
		args = append(args, "-Werror")
	}
	return args
}

// CompileFile compiles a GLSL file whose stage glslc infers from its
// extension (.vert, .frag, .comp, ...).
func CompileFile(path string, opts CompileOptions) ([]uint32, error) {
	args := append(opts.args(), path, "-o", "-")
	return runCompiler(args, nil)
}

// CompileSource compiles GLSL source handed over stdin for an explicit
// stage.
func CompileSource(source string, stage Stage, opts CompileOptions) ([]uint32, error) {
	args := append(opts.args(), "-fshader-stage="+string(stage), "-", "-o", "-")
	return runCompiler(args, strings.NewReader(source))
}

func runCompiler(args []string, stdin *strings.Reader) ([]uint32, error) {
	cmd := exec.Command(compilerName, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, vkbase.ErrShaderc(msg)
	}
	return FromBytes(stdout.Bytes())
}
