// SPDX-License-Identifier: Unlicense OR MIT

// Package gpucmd implements the deferred and live GPU command buffers
// (C9/C10): a recording interface that allocates tagged, variable-
// length records from a doubling byte arena, and a linear-replay
// Submit that walks the record stream and dispatches each record to a
// target.
//
// Grounded on gioui.org/internal/ops.Ops: Write/Write1/Write2/Write3's
// append-and-grow pattern, PCFor's program-counter bookmarking, and
// Reset's release-on-rewind. Unlike ops.go, which derives each
// record's owned-reference count from a static per-opcode lookup
// table (opProps), several of this buffer's record types carry a
// variable number of owned references (set-fence-syncs, one per
// sync), so the reference count is recorded directly in the record's
// index entry instead of being looked up by type.
package gpucmd

import (
	"bytes"
	"encoding/binary"
)

// RecordType tags one entry in the command stream.
type RecordType uint8

const (
	CopyBufferData RecordType = iota
	CopyBuffer
	CopyBufferToTexture
	CopyTextureData
	CopyTexture
	CopyTextureToBuffer
	GenerateMipmaps
	SetFenceSyncs
	BeginQuery
	EndQuery
	TimestampQuery
	CopyQueryValues
	BindShader
	SetTexture
	SetTextureBuffer
	SetShaderBuffer
	SetUniform
	UpdateDynamicRenderStates
	UnbindShader
	BindComputeShader
	UnbindComputeShader
	BeginRenderSurface
	EndRenderSurface
	BeginRenderPass
	NextSubpass
	EndRenderPass
	SetViewport
	ClearAttachments
	Draw
	DrawIndexed
	DrawIndirect
	DrawIndexedIndirect
	DispatchCompute
	DispatchComputeIndirect
	BlitSurface
	PushDebugGroup
	PopDebugGroup
	MemoryBarrier
	SubmitBuffer
)

// initialArenaBytes is the deferred buffer's first allocation, per
// the component design's 512 KiB starting capacity.
const initialArenaBytes = 512 * 1024

// recordEntry indexes one record in data/refs without needing to
// parse the header to find its boundaries.
type recordEntry struct {
	Type     RecordType
	Offset   int
	Length   int
	RefStart int
	RefCount int
}

// PC is a bookmark into a buffer's record stream, the gpucmd analog of
// ops.PC: how many records and owned references existed at the time it
// was taken.
type PC struct {
	Record int
	Ref    int
}

// Refcounted is implemented by resource handles (buffers, textures,
// shaders, syncs, ...) that track their own atomic reference count,
// the Go-side analog of GLGfxFence.c's DS_ATOMIC_FETCH_ADD32(&sync->refCount,
// ...) pattern. Every reference appended to the arena is retained
// immediately, so a resource can't be released out from under a still
// -pending recorded command, and released exactly once when the
// record that owns it is discarded on reset. Resource handles that
// don't implement it (plain test doubles, value types) are recorded
// as before without any retain/release call.
type Refcounted interface {
	Retain()
	Release()
}

// arena is the growable byte+ref store shared by deferred and live
// buffers.
type arena struct {
	data    []byte
	refs    []any
	records []recordEntry
}

// mark returns the current write position, for later FillMacro-style
// patching or truncation.
func (a *arena) mark() PC {
	return PC{Record: len(a.records), Ref: len(a.refs)}
}

// grow ensures n more bytes fit in a.data, growing by
// max(2x current capacity, current length + requested) once the
// arena's first allocation has happened.
func (a *arena) grow(n int) {
	need := len(a.data) + n
	if need <= cap(a.data) {
		return
	}
	newCap := cap(a.data) * 2
	if cap(a.data) == 0 {
		newCap = initialArenaBytes
	}
	if newCap < need {
		newCap = need
	}
	next := make([]byte, len(a.data), newCap)
	copy(next, a.data)
	a.data = next
}

// append writes one tagged record: header bytes plus zero or more
// owned references, and returns its index.
func (a *arena) append(t RecordType, header []byte, refs ...any) int {
	a.grow(len(header))
	off := len(a.data)
	a.data = a.data[:off+len(header)]
	copy(a.data[off:], header)
	for _, r := range refs {
		if rc, ok := r.(Refcounted); ok {
			rc.Retain()
		}
	}
	refStart := len(a.refs)
	a.refs = append(a.refs, refs...)
	a.records = append(a.records, recordEntry{
		Type: t, Offset: off, Length: len(header),
		RefStart: refStart, RefCount: len(refs),
	})
	return len(a.records) - 1
}

// reset releases every owned reference in reverse record order (so a
// record that depends on an earlier one for its release, e.g. a copy
// releasing both its source and destination, always sees the
// dependency still present while it's being released) and truncates
// the arena, keeping its backing storage.
func (a *arena) reset() {
	for i := len(a.records) - 1; i >= 0; i-- {
		e := a.records[i]
		for j := e.RefStart; j < e.RefStart+e.RefCount; j++ {
			if rc, ok := a.refs[j].(Refcounted); ok {
				rc.Release()
			}
			a.refs[j] = nil
		}
	}
	a.data = a.data[:0]
	a.refs = a.refs[:0]
	a.records = a.records[:0]
}

func marshal(v any) []byte {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
