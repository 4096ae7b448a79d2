package unsafer

import (
	"reflect"
	"unsafe"
)

// SliceToBytes interprets an arbitrary input slice as a byte slice.
//
// Note that the returned slice points to the same underlying data in memory. It
// does not make a copy.
func SliceToBytes[T any](input []T) []byte {
	header := *(*reflect.SliceHeader)(unsafe.Pointer(&input))
	header.Len = int(unsafe.Sizeof(input[0])) * len(input)
	header.Cap = header.Len
	bytesSlice := *(*[]byte)(unsafe.Pointer(&header))
	return bytesSlice
}

// StructToBytes interprets a struct value as a byte slice over its memory.
//
// The same aliasing warning as for SliceToBytes applies.
func StructToBytes[T any](input *T) []byte {
	size := int(unsafe.Sizeof(*input))
	header := reflect.SliceHeader{
		Data: uintptr(unsafe.Pointer(input)),
		Len:  size,
		Cap:  size,
	}
	return *(*[]byte)(unsafe.Pointer(&header))
}

// BytesToUint32 repacks a byte slice into native-endian uint32 words. The
// length of data must be a multiple of four. SPIR-V code is handed to Vulkan
// this way.
func BytesToUint32(data []byte) []uint32 {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = *(*uint32)(unsafe.Pointer(&data[i*4]))
	}
	return words
}
