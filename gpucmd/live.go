// SPDX-License-Identifier: Unlicense OR MIT

package gpucmd

import "time"

// LiveBuffer executes each operation against an underlying driver Target in
// place (C10), rather than recording it. It implements Target itself by
// forwarding every call, so a DeferredBuffer can Submit directly against a
// LiveBuffer exactly as it would against the raw driver.
//
// Tracking of bound framebuffer/subpass/program/geometry state and the
// temporary-renderbuffer LRU described in spec.md §4.10 belongs to the
// driver (C11/C12) behind Target; LiveBuffer itself is a thin pass-through
// plus the one operation a deferred buffer may not perform: accepting a
// nested submit.
type LiveBuffer struct {
	driver Target
}

// NewLiveBuffer wraps driver, the Target that executes each record.
func NewLiveBuffer(driver Target) *LiveBuffer {
	return &LiveBuffer{driver: driver}
}

// SubmitBuffer replays other's recorded operations against this live buffer
// immediately, then resets other per DeferredBuffer.Submit's usual policy.
// Only a live buffer may accept the submission of another buffer
// (spec.md §4.9).
func (l *LiveBuffer) SubmitBuffer(other *DeferredBuffer) error {
	return other.Submit(l)
}

func (l *LiveBuffer) WaitFence(sync Sync, timeout time.Duration) (bool, error) {
	return l.driver.WaitFence(sync, timeout)
}

func (l *LiveBuffer) CopyBufferData(dst Buffer, offset uint64, data []byte) error {
	return l.driver.CopyBufferData(dst, offset, data)
}

func (l *LiveBuffer) CopyBuffer(src, dst Buffer, regions []BufferRegion) error {
	return l.driver.CopyBuffer(src, dst, regions)
}

func (l *LiveBuffer) CopyBufferToTexture(src Buffer, dst Texture, regions []TextureRegion) error {
	return l.driver.CopyBufferToTexture(src, dst, regions)
}

func (l *LiveBuffer) CopyTextureData(dst Texture, position TexturePosition, width, height uint32, data []byte) error {
	return l.driver.CopyTextureData(dst, position, width, height, data)
}

func (l *LiveBuffer) CopyTexture(src, dst Texture, regions []TextureRegion) error {
	return l.driver.CopyTexture(src, dst, regions)
}

func (l *LiveBuffer) CopyTextureToBuffer(src Texture, dst Buffer, regions []TextureRegion) error {
	return l.driver.CopyTextureToBuffer(src, dst, regions)
}

func (l *LiveBuffer) GenerateMipmaps(tex Texture) error {
	return l.driver.GenerateMipmaps(tex)
}

// SetFenceSyncs forwards directly outside a render pass; queuing until
// render-pass end (spec.md §4.10's "fences are queued and flushed at
// render-pass end") belongs to the driver, which knows whether a pass is
// open.
func (l *LiveBuffer) SetFenceSyncs(syncs []Sync, bufferReadback, flush bool) error {
	return l.driver.SetFenceSyncs(syncs, bufferReadback, flush)
}

func (l *LiveBuffer) BeginQuery(q Query, index uint32) error {
	return l.driver.BeginQuery(q, index)
}

func (l *LiveBuffer) EndQuery(q Query, index uint32) error {
	return l.driver.EndQuery(q, index)
}

func (l *LiveBuffer) TimestampQuery(q Query, index uint32) error {
	return l.driver.TimestampQuery(q, index)
}

func (l *LiveBuffer) CopyQueryValues(q Query, first, count uint32, dst Buffer, offset uint64, stride uint64, as64Bit bool) error {
	return l.driver.CopyQueryValues(q, first, count, dst, offset, stride, as64Bit)
}

func (l *LiveBuffer) BindShader(s Shader, dynamic *DynamicRenderStates) error {
	return l.driver.BindShader(s, dynamic)
}

func (l *LiveBuffer) SetTexture(s Shader, element uint32, tex Texture) error {
	return l.driver.SetTexture(s, element, tex)
}

func (l *LiveBuffer) SetTextureBuffer(s Shader, element uint32, buf Buffer) error {
	return l.driver.SetTextureBuffer(s, element, buf)
}

func (l *LiveBuffer) SetShaderBuffer(s Shader, element uint32, buf Buffer) error {
	return l.driver.SetShaderBuffer(s, element, buf)
}

func (l *LiveBuffer) SetUniform(s Shader, element uint32, data []byte) error {
	return l.driver.SetUniform(s, element, data)
}

func (l *LiveBuffer) UpdateDynamicRenderStates(dynamic DynamicRenderStates) error {
	return l.driver.UpdateDynamicRenderStates(dynamic)
}

func (l *LiveBuffer) UnbindShader(s Shader) error {
	return l.driver.UnbindShader(s)
}

func (l *LiveBuffer) BindComputeShader(s ComputeShader) error {
	return l.driver.BindComputeShader(s)
}

func (l *LiveBuffer) UnbindComputeShader(s ComputeShader) error {
	return l.driver.UnbindComputeShader(s)
}

func (l *LiveBuffer) BeginRenderSurface(surface RenderSurface) error {
	return l.driver.BeginRenderSurface(surface)
}

func (l *LiveBuffer) EndRenderSurface(surface RenderSurface) error {
	return l.driver.EndRenderSurface(surface)
}

func (l *LiveBuffer) BeginRenderPass(surface RenderSurface, clears []ClearValue) error {
	return l.driver.BeginRenderPass(surface, clears)
}

func (l *LiveBuffer) NextSubpass() error {
	return l.driver.NextSubpass()
}

func (l *LiveBuffer) EndRenderPass() error {
	return l.driver.EndRenderPass()
}

func (l *LiveBuffer) SetViewport(v Viewport) error {
	return l.driver.SetViewport(v)
}

func (l *LiveBuffer) ClearAttachments(values []ClearValue) error {
	return l.driver.ClearAttachments(values)
}

func (l *LiveBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	return l.driver.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (l *LiveBuffer) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error {
	return l.driver.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (l *LiveBuffer) DrawIndirect(buf Buffer, offset uint64) error {
	return l.driver.DrawIndirect(buf, offset)
}

func (l *LiveBuffer) DrawIndexedIndirect(buf Buffer, offset uint64) error {
	return l.driver.DrawIndexedIndirect(buf, offset)
}

func (l *LiveBuffer) DispatchCompute(x, y, z uint32) error {
	return l.driver.DispatchCompute(x, y, z)
}

func (l *LiveBuffer) DispatchComputeIndirect(buf Buffer, offset uint64) error {
	return l.driver.DispatchComputeIndirect(buf, offset)
}

func (l *LiveBuffer) BlitSurface(src, dst RenderSurface, regions []TextureRegion, filter bool) error {
	return l.driver.BlitSurface(src, dst, regions, filter)
}

func (l *LiveBuffer) PushDebugGroup(name string) error {
	return l.driver.PushDebugGroup(name)
}

func (l *LiveBuffer) PopDebugGroup() error {
	return l.driver.PopDebugGroup()
}

func (l *LiveBuffer) MemoryBarrier(barriers []uint32) error {
	return l.driver.MemoryBarrier(barriers)
}
