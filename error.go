// Package vkbase wraps the Vulkan core objects (instance, physical and logical
// device, swapchain) behind a small configuration surface. It does not try to
// cover the whole API; it removes the boilerplate the examples would otherwise
// repeat.
package vkbase

import (
	"fmt"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// ErrorKind is a flat classification of everything that can go wrong inside
// the wrapper. Errors are propagated to the caller as-is; nothing here retries.
type ErrorKind int

const (
	// KindOther covers failures that fit no other kind.
	KindOther ErrorKind = iota
	// KindUnlink marks a missing connection to a Vulkan entity (an entry
	// point or handle that should exist but does not).
	KindUnlink
	// KindQuery marks a failed property/capability query.
	KindQuery
	// KindCreate marks a failed vkCreate*/vkAllocate* call.
	KindCreate
	// KindUnsupported marks a requested layer, extension, format or feature
	// the implementation does not provide.
	KindUnsupported
	// KindDevice marks a runtime device operation failure (submit, wait, map).
	KindDevice
	// KindShaderc marks a shader compilation failure.
	KindShaderc
	// KindWindow marks a windowing system failure.
	KindWindow
	// KindPath marks an asset that could not be found or decoded.
	KindPath
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnlink:
		return "unlink"
	case KindQuery:
		return "query"
	case KindCreate:
		return "create"
	case KindUnsupported:
		return "unsupported"
	case KindDevice:
		return "device"
	case KindShaderc:
		return "shaderc"
	case KindWindow:
		return "window"
	case KindPath:
		return "path"
	default:
		return "other"
	}
}

// Error carries the kind together with the wrapped cause chain.
type Error struct {
	Kind  ErrorKind
	cause error
}

func (e *Error) Error() string { return e.cause.Error() }

// Unwrap exposes the cause so errors.Is/As see through the kind tag.
func (e *Error) Unwrap() error { return e.cause }

// Format defers to the cause so %+v prints the attached stack trace.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	p.Printf("[%s]", e.Kind)
	return e.cause
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

// KindOf reports the ErrorKind of err, or KindOther when err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// ErrUnlink reports a Vulkan entity that could not be reached.
func ErrUnlink(target string) error {
	return newError(KindUnlink, errors.Newf("failed to link %s", target))
}

// ErrQuery reports a failed property query for target.
func ErrQuery(target string) error {
	return newError(KindQuery, errors.Newf("failed to query %s", target))
}

// ErrCreate wraps the vk.Result of a failed creation of target.
func ErrCreate(target string, ret vk.Result) error {
	return newError(KindCreate, errors.Wrapf(vk.Error(ret), "failed to create %s", target))
}

// ErrUnsupported reports a layer, extension, format or feature the
// implementation does not provide.
func ErrUnsupported(feature string) error {
	return newError(KindUnsupported, errors.Newf("%s is not supported", feature))
}

// ErrDevice wraps the vk.Result of a failed device operation.
func ErrDevice(op string, ret vk.Result) error {
	return newError(KindDevice, errors.Wrapf(vk.Error(ret), "device failed to %s", op))
}

// ErrShaderc reports a shader compilation failure with the compiler output.
func ErrShaderc(msg string) error {
	return newError(KindShaderc, errors.Newf("shader compilation failed: %s", msg))
}

// ErrWindow reports a windowing system failure.
func ErrWindow(cause error) error {
	return newError(KindWindow, errors.Wrap(cause, "window system"))
}

// ErrPath reports an asset that could not be located or decoded.
func ErrPath(path string, cause error) error {
	if cause == nil {
		return newError(KindPath, errors.Newf("unable to load asset at %s", path))
	}
	return newError(KindPath, errors.Wrapf(cause, "unable to load asset at %s", path))
}

// ErrOther wraps an arbitrary failure.
func ErrOther(cause error) error {
	return newError(KindOther, cause)
}
