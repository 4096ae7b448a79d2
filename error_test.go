package vkbase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{ErrUnlink("vkCreateInstance"), KindUnlink},
		{ErrQuery("surface capabilities"), KindQuery},
		{ErrCreate("buffer", vk.ErrorOutOfDeviceMemory), KindCreate},
		{ErrUnsupported("VK_KHR_swapchain"), KindUnsupported},
		{ErrDevice("submit", vk.ErrorDeviceLost), KindDevice},
		{ErrShaderc("triangle.vert:3: error"), KindShaderc},
		{ErrPath("mesh.gltf", nil), KindPath},
		{ErrOther(errors.New("boom")), KindOther},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.kind {
			t.Errorf("KindOf(%v) = %v, want %v", c.err, got, c.kind)
		}
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindOther {
		t.Errorf("KindOf(plain) = %v, want KindOther", got)
	}
}

func TestErrCreateKeepsResult(t *testing.T) {
	err := ErrCreate("swapchain", vk.ErrorOutOfDeviceMemory)
	if !errors.Is(err, vk.Error(vk.ErrorOutOfDeviceMemory)) {
		t.Error("wrapped vk.Result is not reachable through errors.Is")
	}
	if !strings.Contains(err.Error(), "swapchain") {
		t.Errorf("message %q does not name the object", err.Error())
	}
}

func TestErrWrappedDeeper(t *testing.T) {
	err := fmt.Errorf("creating context: %w", ErrUnsupported("anisotropy"))
	if got := KindOf(err); got != KindUnsupported {
		t.Errorf("KindOf through fmt wrap = %v, want KindUnsupported", got)
	}
}
