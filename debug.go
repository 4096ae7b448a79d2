package vkbase

import (
	"log"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DebugSeverity selects which validation messages the debugger reports.
type DebugSeverity int

const (
	// DebugNone disables the debug report callback entirely.
	DebugNone DebugSeverity = iota
	// DebugErrors reports errors only.
	DebugErrors
	// DebugWarnings reports errors, warnings and performance warnings.
	DebugWarnings
	// DebugVerbose reports everything including information and debug spam.
	DebugVerbose
)

func (s DebugSeverity) flags() vk.DebugReportFlags {
	var flags vk.DebugReportFlagBits
	switch s {
	case DebugVerbose:
		flags |= vk.DebugReportInformationBit | vk.DebugReportDebugBit
		fallthrough
	case DebugWarnings:
		flags |= vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit
		fallthrough
	case DebugErrors:
		flags |= vk.DebugReportErrorBit
	}
	return vk.DebugReportFlags(flags)
}

// Debugger installs a VK_EXT_debug_report callback that forwards validation
// layer messages to the standard logger.
type Debugger struct {
	instance vk.Instance
	callback vk.DebugReportCallback
}

// NewDebugger registers the report callback on instance. With DebugNone it
// returns a no-op Debugger whose Destroy is safe to call.
func NewDebugger(instance *Instance, severity DebugSeverity) (*Debugger, error) {
	d := &Debugger{instance: instance.Handle}
	if severity == DebugNone {
		return d, nil
	}

	createInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       severity.flags(),
		PfnCallback: reportCallback,
	}
	if ret := vk.CreateDebugReportCallback(instance.Handle, &createInfo, nil, &d.callback); ret != vk.Success {
		return nil, ErrCreate("debug report callback", ret)
	}
	return d, nil
}

// Destroy unregisters the callback.
func (d *Debugger) Destroy() {
	if d.callback != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(d.instance, d.callback, nil)
		d.callback = vk.NullDebugReportCallback
	}
}

func reportCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, layerPrefix string,
	message string, userData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Printf("[Debug][%s] ERROR: %s", layerPrefix, message)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		log.Printf("[Debug][%s] WARNING: %s", layerPrefix, message)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		log.Printf("[Debug][%s] PERFORMANCE: %s", layerPrefix, message)
	default:
		log.Printf("[Debug][%s] %s", layerPrefix, message)
	}
	// Never abort the triggering call.
	return vk.Bool32(vk.False)
}
