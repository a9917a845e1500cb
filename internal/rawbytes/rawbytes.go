// SPDX-License-Identifier: Unlicense OR MIT

// Package rawbytes views a slice of fixed-layout values as raw bytes,
// the zero-copy way a VectorImage's vertex and index buffers are
// handed to a GPU driver's buffer-upload call.
//
// Adapted from gio's internal/unsafe.BytesView: the same zero-copy
// cast, rewritten with Go generics and unsafe.Slice in place of
// reflect.SliceHeader, which predates generics.
package rawbytes

import "unsafe"

// View returns a byte slice aliasing s's backing array. The result
// aliases s: it is only valid as long as s is not reallocated (e.g. by
// an append growing it) or garbage collected out from under the
// returned slice, so callers should finish any use of the bytes (such
// as a single driver upload call) before s goes out of scope.
func View[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*size)
}
