// SPDX-License-Identifier: Unlicense OR MIT

package gpucmd

import (
	"bytes"
	"testing"
	"time"
)

// refCounted is a minimal stand-in for a resource-manager-owned buffer: a
// pointer implementing gpucmd.Refcounted, whose count the package itself
// retains and releases exactly once per record/reset cycle, enough to
// exercise invariant 6.
type refCounted struct{ n int }

func (r *refCounted) Retain()  { r.n++ }
func (r *refCounted) Release() { r.n-- }

// mockTarget records every call it receives so tests can assert on exact
// argument parity (scenario S5).
type mockTarget struct {
	copyBufferData []struct {
		dst    Buffer
		offset uint64
		data   []byte
	}
	fenceSyncs      [][]Sync
	draws           int
	debugGroupsOpen []string
}

func (m *mockTarget) CopyBufferData(dst Buffer, offset uint64, data []byte) error {
	cp := append([]byte(nil), data...)
	m.copyBufferData = append(m.copyBufferData, struct {
		dst    Buffer
		offset uint64
		data   []byte
	}{dst, offset, cp})
	return nil
}
func (m *mockTarget) CopyBuffer(src, dst Buffer, regions []BufferRegion) error            { return nil }
func (m *mockTarget) CopyBufferToTexture(src Buffer, dst Texture, r []TextureRegion) error { return nil }
func (m *mockTarget) CopyTextureData(dst Texture, p TexturePosition, w, h uint32, data []byte) error {
	return nil
}
func (m *mockTarget) CopyTexture(src, dst Texture, r []TextureRegion) error         { return nil }
func (m *mockTarget) CopyTextureToBuffer(src Texture, dst Buffer, r []TextureRegion) error {
	return nil
}
func (m *mockTarget) GenerateMipmaps(tex Texture) error { return nil }
func (m *mockTarget) SetFenceSyncs(syncs []Sync, bufferReadback, flush bool) error {
	m.fenceSyncs = append(m.fenceSyncs, syncs)
	return nil
}
func (m *mockTarget) BeginQuery(q Query, index uint32) error                   { return nil }
func (m *mockTarget) EndQuery(q Query, index uint32) error                     { return nil }
func (m *mockTarget) TimestampQuery(q Query, index uint32) error               { return nil }
func (m *mockTarget) CopyQueryValues(q Query, first, count uint32, dst Buffer, offset, stride uint64, as64Bit bool) error {
	return nil
}
func (m *mockTarget) BindShader(s Shader, dynamic *DynamicRenderStates) error    { return nil }
func (m *mockTarget) SetTexture(s Shader, element uint32, tex Texture) error     { return nil }
func (m *mockTarget) SetTextureBuffer(s Shader, element uint32, buf Buffer) error { return nil }
func (m *mockTarget) SetShaderBuffer(s Shader, element uint32, buf Buffer) error { return nil }
func (m *mockTarget) SetUniform(s Shader, element uint32, data []byte) error    { return nil }
func (m *mockTarget) UpdateDynamicRenderStates(dynamic DynamicRenderStates) error { return nil }
func (m *mockTarget) UnbindShader(s Shader) error                               { return nil }
func (m *mockTarget) BindComputeShader(s ComputeShader) error                   { return nil }
func (m *mockTarget) UnbindComputeShader(s ComputeShader) error                 { return nil }
func (m *mockTarget) BeginRenderSurface(surface RenderSurface) error            { return nil }
func (m *mockTarget) EndRenderSurface(surface RenderSurface) error              { return nil }
func (m *mockTarget) BeginRenderPass(surface RenderSurface, clears []ClearValue) error {
	return nil
}
func (m *mockTarget) NextSubpass() error                          { return nil }
func (m *mockTarget) EndRenderPass() error                        { return nil }
func (m *mockTarget) SetViewport(v Viewport) error                { return nil }
func (m *mockTarget) ClearAttachments(values []ClearValue) error  { return nil }
func (m *mockTarget) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	m.draws++
	return nil
}
func (m *mockTarget) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error {
	m.draws++
	return nil
}
func (m *mockTarget) DrawIndirect(buf Buffer, offset uint64) error         { return nil }
func (m *mockTarget) DrawIndexedIndirect(buf Buffer, offset uint64) error  { return nil }
func (m *mockTarget) DispatchCompute(x, y, z uint32) error                 { return nil }
func (m *mockTarget) DispatchComputeIndirect(buf Buffer, offset uint64) error { return nil }
func (m *mockTarget) BlitSurface(src, dst RenderSurface, regions []TextureRegion, filter bool) error {
	return nil
}
func (m *mockTarget) PushDebugGroup(name string) error {
	m.debugGroupsOpen = append(m.debugGroupsOpen, name)
	return nil
}
func (m *mockTarget) PopDebugGroup() error { return nil }
func (m *mockTarget) MemoryBarrier(barriers []uint32) error { return nil }
func (m *mockTarget) WaitFence(sync Sync, timeout time.Duration) (bool, error) {
	return true, nil
}

func TestCopyBufferDataRecordReplayParity(t *testing.T) {
	buf := &refCounted{n: 1} // the caller's own pre-existing reference

	d := NewDeferredBuffer(0)
	payload := bytes.Repeat([]byte{0xAB}, 256)
	if err := d.CopyBufferData(buf, 0, payload); err != nil {
		t.Fatalf("CopyBufferData: %v", err)
	}
	// CopyBufferData itself retained buf for the pending record.
	if buf.n != 2 {
		t.Fatalf("refcount after record = %d, want 2 (caller's + gpucmd's own retain)", buf.n)
	}

	target := &mockTarget{}
	if err := d.Submit(target); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(target.copyBufferData) != 1 {
		t.Fatalf("got %d calls, want 1", len(target.copyBufferData))
	}
	call := target.copyBufferData[0]
	if call.dst != Buffer(buf) || call.offset != 0 || !bytes.Equal(call.data, payload) {
		t.Errorf("replayed call = %+v, want dst=%v offset=0 data=%x", call, buf, payload)
	}

	// Submit auto-resets (no MultiSubmit|MultiFrame usage), which must
	// have released gpucmd's own retained reference without the test
	// calling Release itself.
	if buf.n != 1 {
		t.Errorf("refcount after record/submit/reset cycle = %d, want 1 (back to the caller's reference alone)", buf.n)
	}
}

func TestSetFenceSyncsRetainsEachSync(t *testing.T) {
	d := NewDeferredBuffer(0)
	syncs := []Sync{new(int), new(int), new(int)}
	if err := d.SetFenceSyncs(syncs, true, false); err != nil {
		t.Fatalf("SetFenceSyncs: %v", err)
	}
	if got := d.a.records[0].RefCount; got != len(syncs) {
		t.Errorf("RefCount = %d, want %d", got, len(syncs))
	}

	target := &mockTarget{}
	if err := d.Submit(target); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(target.fenceSyncs) != 1 || len(target.fenceSyncs[0]) != 3 {
		t.Errorf("replayed fence syncs = %+v, want one call with 3 syncs", target.fenceSyncs)
	}
}

func TestDeferredBufferRejectsSubmitBuffer(t *testing.T) {
	outer := NewDeferredBuffer(0)
	inner := NewDeferredBuffer(0)
	if err := outer.SubmitBuffer(inner); err == nil {
		t.Fatal("expected an error; a deferred buffer must reject submit of another buffer")
	}
}

func TestLiveBufferAcceptsSubmitBuffer(t *testing.T) {
	target := &mockTarget{}
	live := NewLiveBuffer(target)

	deferredBuf := NewDeferredBuffer(0)
	if err := deferredBuf.Draw(3, 1, 0, 0); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := live.SubmitBuffer(deferredBuf); err != nil {
		t.Fatalf("SubmitBuffer: %v", err)
	}
	if target.draws != 1 {
		t.Errorf("draws = %d, want 1", target.draws)
	}
}

func TestMultiSubmitUsageSkipsAutoReset(t *testing.T) {
	d := NewDeferredBuffer(MultiSubmit | MultiFrame)
	if err := d.Draw(1, 1, 0, 0); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	target := &mockTarget{}
	if err := d.Submit(target); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(d.a.records) != 1 {
		t.Fatalf("records after submit = %d, want 1 (no auto-reset under MultiSubmit|MultiFrame)", len(d.a.records))
	}
	if err := d.Submit(target); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if target.draws != 2 {
		t.Errorf("draws after two submits = %d, want 2", target.draws)
	}
}
