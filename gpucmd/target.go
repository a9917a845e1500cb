// SPDX-License-Identifier: Unlicense OR MIT

package gpucmd

import "time"

// Buffer, Texture, Shader, ComputeShader, RenderSurface, Sync and Query are
// opaque resource handles owned by the resource manager and driver layers,
// which this module does not contain; gpucmd only retains them across a
// record's lifetime and forwards them to a Target on Submit.
type Buffer any
type Texture any
type Shader any
type ComputeShader any
type RenderSurface any
type Sync any
type Query any

// BufferRegion is one copy range between two buffers or between a buffer and
// a texture's linearized staging layout.
type BufferRegion struct {
	SrcOffset, DstOffset uint64
	Size                 uint64
}

// TexturePosition addresses one mip level, array layer and texel offset
// within a texture.
type TexturePosition struct {
	X, Y, Z    uint32
	MipLevel   uint32
	Layer      uint32
}

// TextureRegion is one copy range between textures, or between a texture and
// a buffer's linearized staging layout.
type TextureRegion struct {
	SrcPosition, DstPosition TexturePosition
	Width, Height, Layers    uint32
}

// ClearValue is one render-pass attachment's clear value, tagged by the
// attachment's format class so the target can pick the matching
// glClearBuffer* variant.
type ClearValue struct {
	Color        [4]float32
	Depth        float32
	Stencil      uint32
	IsDepthStencil bool
}

// Viewport is a normalized device viewport plus depth range.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// DynamicRenderStates carries the subset of render state overridable without
// a full pipeline-state record: depth bias, line width, depth bounds,
// front/back stencil references and blend constants (C11's
// updateDynamicGLState). Stencil compare and write masks are not carried.
type DynamicRenderStates struct {
	DepthBiasConstant, DepthBiasClamp, DepthBiasSlope float32
	LineWidth                                         float32
	DepthBoundsMin, DepthBoundsMax                     float32
	FrontStencilReference, BackStencilReference        uint32
	BlendConstants                                     [4]float32
}

// Target dispatches one record at a time during Submit. No package in this
// module implements it (gpudriver provides the state-diff and format-table
// pieces, not a Target); gpucmd depends only on this shape,
// mirroring how gioui.org/gpu/internal/driver.Device separates recording from
// execution.
type Target interface {
	CopyBufferData(dst Buffer, offset uint64, data []byte) error
	CopyBuffer(src, dst Buffer, regions []BufferRegion) error
	CopyBufferToTexture(src Buffer, dst Texture, regions []TextureRegion) error
	CopyTextureData(dst Texture, position TexturePosition, width, height uint32, data []byte) error
	CopyTexture(src, dst Texture, regions []TextureRegion) error
	CopyTextureToBuffer(src Texture, dst Buffer, regions []TextureRegion) error
	GenerateMipmaps(tex Texture) error

	SetFenceSyncs(syncs []Sync, bufferReadback, flush bool) error
	BeginQuery(q Query, index uint32) error
	EndQuery(q Query, index uint32) error
	TimestampQuery(q Query, index uint32) error
	CopyQueryValues(q Query, first, count uint32, dst Buffer, offset uint64, stride uint64, as64Bit bool) error

	BindShader(s Shader, dynamic *DynamicRenderStates) error
	SetTexture(s Shader, element uint32, tex Texture) error
	SetTextureBuffer(s Shader, element uint32, buf Buffer) error
	SetShaderBuffer(s Shader, element uint32, buf Buffer) error
	SetUniform(s Shader, element uint32, data []byte) error
	UpdateDynamicRenderStates(dynamic DynamicRenderStates) error
	UnbindShader(s Shader) error

	BindComputeShader(s ComputeShader) error
	UnbindComputeShader(s ComputeShader) error

	BeginRenderSurface(surface RenderSurface) error
	EndRenderSurface(surface RenderSurface) error
	BeginRenderPass(surface RenderSurface, clears []ClearValue) error
	NextSubpass() error
	EndRenderPass() error

	SetViewport(v Viewport) error
	ClearAttachments(values []ClearValue) error

	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error
	DrawIndirect(buf Buffer, offset uint64) error
	DrawIndexedIndirect(buf Buffer, offset uint64) error
	DispatchCompute(x, y, z uint32) error
	DispatchComputeIndirect(buf Buffer, offset uint64) error

	BlitSurface(src, dst RenderSurface, regions []TextureRegion, filter bool) error
	PushDebugGroup(name string) error
	PopDebugGroup() error
	MemoryBarrier(barriers []uint32) error

	// WaitFence blocks up to timeout for sync to signal, the live buffer's
	// one suspension point per spec.md §5.
	WaitFence(sync Sync, timeout time.Duration) (bool, error)
}
