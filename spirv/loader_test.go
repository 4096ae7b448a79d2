package spirv

import (
	"encoding/binary"
	"testing"

	"vkbase"
)

func spvBytes(words ...uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func TestFromBytes(t *testing.T) {
	words, err := FromBytes(spvBytes(spirvMagic, 0x00010000, 0, 1, 0))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if len(words) != 5 {
		t.Errorf("got %d words, want 5", len(words))
	}
	if words[0] != spirvMagic {
		t.Errorf("first word %#x, want the magic number", words[0])
	}
}

func TestFromBytesRejectsBadLength(t *testing.T) {
	_, err := FromBytes([]byte{0x03, 0x02, 0x23})
	if err == nil {
		t.Fatal("expected error for truncated input")
	}
	if vkbase.KindOf(err) != vkbase.KindShaderc {
		t.Errorf("error kind %v, want KindShaderc", vkbase.KindOf(err))
	}
}

func TestFromBytesRejectsBadMagic(t *testing.T) {
	if _, err := FromBytes(spvBytes(0xdeadbeef, 0, 0, 0)); err == nil {
		t.Fatal("expected error for wrong magic number")
	}
}

func TestCompileOptionsArgs(t *testing.T) {
	args := CompileOptions{Optimization: OptPerformance, DebugInfo: true}.args()
	want := map[string]bool{"-O": false, "-g": false}
	for _, a := range args {
		if _, ok := want[a]; ok {
			want[a] = true
		}
	}
	for flag, seen := range want {
		if !seen {
			t.Errorf("flag %s missing from %v", flag, args)
		}
	}

	args = CompileOptions{}.args()
	for _, a := range args {
		if a == "-O" {
			t.Error("default options must not optimize")
		}
	}
}
