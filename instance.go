package vkbase

import (
	"log"
	"strings"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// InstanceConfig controls instance creation. The zero value is not usable;
// start from DefaultInstanceConfig.
type InstanceConfig struct {
	APIVersion    uint32
	AppVersion    uint32
	EngineVersion uint32
	AppName       string
	EngineName    string

	// Layers lists the instance layers to enable. Creation fails with an
	// unsupported error when any of them is missing.
	Layers []string

	// DebugReport enables the VK_EXT_debug_report extension and the
	// validation debugger.
	DebugReport bool

	PrintAvailableLayers bool
}

// DefaultInstanceConfig enables the Khronos validation layer together with
// the debug report callback.
func DefaultInstanceConfig() InstanceConfig {
	return InstanceConfig{
		APIVersion:    vk.ApiVersion11,
		AppVersion:    vk.MakeVersion(1, 0, 0),
		EngineVersion: vk.MakeVersion(1, 0, 0),
		AppName:       "vkbase application",
		EngineName:    "vkbase",
		Layers:        []string{"VK_LAYER_KHRONOS_validation"},
		DebugReport:   true,
	}
}

var linkOnce sync.Once

// linkVulkan loads the Vulkan entry points through GLFW's loader. GLFW must be
// initialized first.
func linkVulkan() error {
	var err error
	linkOnce.Do(func() {
		vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
		if vk.Init() != nil {
			err = ErrUnlink("vulkan library")
		}
	})
	return err
}

// Instance owns the vk.Instance handle and the layer set it was created with.
type Instance struct {
	Handle vk.Instance
	Layers []string
}

// NewInstance creates a Vulkan instance per config. The required surface
// extensions are taken from GLFW, so glfw.Init must have been called.
func NewInstance(config InstanceConfig) (*Instance, error) {
	if err := linkVulkan(); err != nil {
		return nil, err
	}
	if err := checkLayerSupport(config.Layers, config.PrintAvailableLayers); err != nil {
		return nil, err
	}

	extensions := glfw.GetCurrentContext().GetRequiredInstanceExtensions()
	if config.DebugReport {
		extensions = append(extensions, vk.ExtDebugReportExtensionName)
	}

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString(config.AppName),
		ApplicationVersion: config.AppVersion,
		PEngineName:        safeString(config.EngineName),
		EngineVersion:      config.EngineVersion,
		ApiVersion:         config.APIVersion,
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(config.Layers)),
		PpEnabledLayerNames:     safeStrings(config.Layers),
	}

	var handle vk.Instance
	if ret := vk.CreateInstance(&createInfo, nil, &handle); ret != vk.Success {
		return nil, ErrCreate("instance", ret)
	}
	vk.InitInstance(handle)

	return &Instance{Handle: handle, Layers: config.Layers}, nil
}

// Destroy releases the instance. Call it last, after every object created
// from the instance is gone.
func (i *Instance) Destroy() {
	vk.DestroyInstance(i.Handle, nil)
}

func checkLayerSupport(requested []string, printAvailable bool) error {
	if len(requested) == 0 {
		return nil
	}

	var count uint32
	if ret := vk.EnumerateInstanceLayerProperties(&count, nil); ret != vk.Success {
		return ErrQuery("instance layers")
	}
	properties := make([]vk.LayerProperties, count)
	if ret := vk.EnumerateInstanceLayerProperties(&count, properties); ret != vk.Success {
		return ErrQuery("instance layers")
	}

	available := make(map[string]bool, count)
	for i := range properties {
		properties[i].Deref()
		available[vk.ToString(properties[i].LayerName[:])] = true
	}
	if printAvailable {
		names := make([]string, 0, len(available))
		for name := range available {
			names = append(names, name)
		}
		log.Printf("[Info] available instance layers: %s", strings.Join(names, ", "))
	}

	for _, layer := range requested {
		if !available[layer] {
			return ErrUnsupported("instance layer " + layer)
		}
	}
	return nil
}

// safeString null-terminates s for handoff to the C side.
func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = safeString(s)
	}
	return out
}
