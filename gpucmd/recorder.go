// SPDX-License-Identifier: Unlicense OR MIT

package gpucmd

// DeferredBuffer records every operation in Target instead of executing it:
// each call below marshals a fixed-size header (plus, for variable-length
// operations, an inline payload of regions or raw bytes) into the shared
// arena and retains the operation's resource handles as owned references.
//
// Usage bits gate Submit's auto-reset behavior; see deferred.go.
type Usage uint8

const (
	MultiSubmit Usage = 1 << iota
	MultiFrame
)

// DeferredBuffer is the deferred command buffer (C9): a CommandBuffer
// recording interface that allocates tagged records from a doubling byte
// arena rather than executing them, for later replay via Submit.
type DeferredBuffer struct {
	a     arena
	usage Usage
}

// NewDeferredBuffer returns an empty deferred buffer with the given usage
// flags (bitwise-or of Usage values).
func NewDeferredBuffer(usage Usage) *DeferredBuffer {
	return &DeferredBuffer{usage: usage}
}

func (d *DeferredBuffer) record(t RecordType, header any, payload []byte, refs ...any) {
	buf := marshal(header)
	if len(payload) > 0 {
		buf = append(buf, payload...)
	}
	d.a.append(t, buf, refs...)
}

type copyBufferDataHeader struct {
	Offset  uint64
	DataLen uint32
}

func (d *DeferredBuffer) CopyBufferData(dst Buffer, offset uint64, data []byte) error {
	d.record(CopyBufferData, copyBufferDataHeader{Offset: offset, DataLen: uint32(len(data))}, data, dst)
	return nil
}

type regionCountHeader struct {
	RegionCount uint32
}

func (d *DeferredBuffer) CopyBuffer(src, dst Buffer, regions []BufferRegion) error {
	d.record(CopyBuffer, regionCountHeader{RegionCount: uint32(len(regions))}, marshal(regions), src, dst)
	return nil
}

func (d *DeferredBuffer) CopyBufferToTexture(src Buffer, dst Texture, regions []TextureRegion) error {
	d.record(CopyBufferToTexture, regionCountHeader{RegionCount: uint32(len(regions))}, marshal(regions), src, dst)
	return nil
}

type copyTextureDataHeader struct {
	Position        TexturePosition
	Width, Height   uint32
	DataLen         uint32
}

func (d *DeferredBuffer) CopyTextureData(dst Texture, position TexturePosition, width, height uint32, data []byte) error {
	d.record(CopyTextureData, copyTextureDataHeader{Position: position, Width: width, Height: height, DataLen: uint32(len(data))}, data, dst)
	return nil
}

func (d *DeferredBuffer) CopyTexture(src, dst Texture, regions []TextureRegion) error {
	d.record(CopyTexture, regionCountHeader{RegionCount: uint32(len(regions))}, marshal(regions), src, dst)
	return nil
}

func (d *DeferredBuffer) CopyTextureToBuffer(src Texture, dst Buffer, regions []TextureRegion) error {
	d.record(CopyTextureToBuffer, regionCountHeader{RegionCount: uint32(len(regions))}, marshal(regions), src, dst)
	return nil
}

func (d *DeferredBuffer) GenerateMipmaps(tex Texture) error {
	d.record(GenerateMipmaps, struct{}{}, nil, tex)
	return nil
}

type setFenceSyncsHeader struct {
	Count          uint32
	BufferReadback bool
	Flush          bool
}

// SetFenceSyncs retains one owned reference per sync, the record type that
// motivated recordEntry carrying its own RefCount instead of a static
// per-type table: every other record here has a fixed ref shape, but this
// one's ref count varies with len(syncs).
func (d *DeferredBuffer) SetFenceSyncs(syncs []Sync, bufferReadback, flush bool) error {
	refs := make([]any, len(syncs))
	for i, s := range syncs {
		refs[i] = s
	}
	d.record(SetFenceSyncs, setFenceSyncsHeader{Count: uint32(len(syncs)), BufferReadback: bufferReadback, Flush: flush}, nil, refs...)
	return nil
}

type queryIndexHeader struct {
	Index uint32
}

func (d *DeferredBuffer) BeginQuery(q Query, index uint32) error {
	d.record(BeginQuery, queryIndexHeader{Index: index}, nil, q)
	return nil
}

func (d *DeferredBuffer) EndQuery(q Query, index uint32) error {
	d.record(EndQuery, queryIndexHeader{Index: index}, nil, q)
	return nil
}

func (d *DeferredBuffer) TimestampQuery(q Query, index uint32) error {
	d.record(TimestampQuery, queryIndexHeader{Index: index}, nil, q)
	return nil
}

type copyQueryValuesHeader struct {
	First, Count uint32
	Offset       uint64
	Stride       uint64
	As64Bit      bool
}

func (d *DeferredBuffer) CopyQueryValues(q Query, first, count uint32, dst Buffer, offset uint64, stride uint64, as64Bit bool) error {
	d.record(CopyQueryValues, copyQueryValuesHeader{First: first, Count: count, Offset: offset, Stride: stride, As64Bit: as64Bit}, nil, q, dst)
	return nil
}

type bindShaderHeader struct {
	HasDynamic bool
	Dynamic    DynamicRenderStates
}

func (d *DeferredBuffer) BindShader(s Shader, dynamic *DynamicRenderStates) error {
	h := bindShaderHeader{HasDynamic: dynamic != nil}
	if dynamic != nil {
		h.Dynamic = *dynamic
	}
	d.record(BindShader, h, nil, s)
	return nil
}

type shaderElementHeader struct {
	Element uint32
}

func (d *DeferredBuffer) SetTexture(s Shader, element uint32, tex Texture) error {
	d.record(SetTexture, shaderElementHeader{Element: element}, nil, s, tex)
	return nil
}

func (d *DeferredBuffer) SetTextureBuffer(s Shader, element uint32, buf Buffer) error {
	d.record(SetTextureBuffer, shaderElementHeader{Element: element}, nil, s, buf)
	return nil
}

func (d *DeferredBuffer) SetShaderBuffer(s Shader, element uint32, buf Buffer) error {
	d.record(SetShaderBuffer, shaderElementHeader{Element: element}, nil, s, buf)
	return nil
}

type setUniformHeader struct {
	Element uint32
	DataLen uint32
}

func (d *DeferredBuffer) SetUniform(s Shader, element uint32, data []byte) error {
	d.record(SetUniform, setUniformHeader{Element: element, DataLen: uint32(len(data))}, data, s)
	return nil
}

type dynamicStatesHeader struct {
	Dynamic DynamicRenderStates
}

func (d *DeferredBuffer) UpdateDynamicRenderStates(dynamic DynamicRenderStates) error {
	d.record(UpdateDynamicRenderStates, dynamicStatesHeader{Dynamic: dynamic}, nil)
	return nil
}

func (d *DeferredBuffer) UnbindShader(s Shader) error {
	d.record(UnbindShader, struct{}{}, nil, s)
	return nil
}

func (d *DeferredBuffer) BindComputeShader(s ComputeShader) error {
	d.record(BindComputeShader, struct{}{}, nil, s)
	return nil
}

func (d *DeferredBuffer) UnbindComputeShader(s ComputeShader) error {
	d.record(UnbindComputeShader, struct{}{}, nil, s)
	return nil
}

func (d *DeferredBuffer) BeginRenderSurface(surface RenderSurface) error {
	d.record(BeginRenderSurface, struct{}{}, nil, surface)
	return nil
}

func (d *DeferredBuffer) EndRenderSurface(surface RenderSurface) error {
	d.record(EndRenderSurface, struct{}{}, nil, surface)
	return nil
}

type beginRenderPassHeader struct {
	ClearCount uint32
}

func (d *DeferredBuffer) BeginRenderPass(surface RenderSurface, clears []ClearValue) error {
	d.record(BeginRenderPass, beginRenderPassHeader{ClearCount: uint32(len(clears))}, marshal(clears), surface)
	return nil
}

func (d *DeferredBuffer) NextSubpass() error {
	d.record(NextSubpass, struct{}{}, nil)
	return nil
}

func (d *DeferredBuffer) EndRenderPass() error {
	d.record(EndRenderPass, struct{}{}, nil)
	return nil
}

type setViewportHeader struct {
	V Viewport
}

func (d *DeferredBuffer) SetViewport(v Viewport) error {
	d.record(SetViewport, setViewportHeader{V: v}, nil)
	return nil
}

type clearCountHeader struct {
	Count uint32
}

func (d *DeferredBuffer) ClearAttachments(values []ClearValue) error {
	d.record(ClearAttachments, clearCountHeader{Count: uint32(len(values))}, marshal(values))
	return nil
}

type drawHeader struct {
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
}

func (d *DeferredBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	d.record(Draw, drawHeader{vertexCount, instanceCount, firstVertex, firstInstance}, nil)
	return nil
}

type drawIndexedHeader struct {
	IndexCount, InstanceCount, FirstIndex uint32
	BaseVertex                            int32
	FirstInstance                         uint32
}

func (d *DeferredBuffer) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error {
	d.record(DrawIndexed, drawIndexedHeader{indexCount, instanceCount, firstIndex, baseVertex, firstInstance}, nil)
	return nil
}

type indirectHeader struct {
	Offset uint64
}

func (d *DeferredBuffer) DrawIndirect(buf Buffer, offset uint64) error {
	d.record(DrawIndirect, indirectHeader{Offset: offset}, nil, buf)
	return nil
}

func (d *DeferredBuffer) DrawIndexedIndirect(buf Buffer, offset uint64) error {
	d.record(DrawIndexedIndirect, indirectHeader{Offset: offset}, nil, buf)
	return nil
}

type dispatchHeader struct {
	X, Y, Z uint32
}

func (d *DeferredBuffer) DispatchCompute(x, y, z uint32) error {
	d.record(DispatchCompute, dispatchHeader{x, y, z}, nil)
	return nil
}

func (d *DeferredBuffer) DispatchComputeIndirect(buf Buffer, offset uint64) error {
	d.record(DispatchComputeIndirect, indirectHeader{Offset: offset}, nil, buf)
	return nil
}

type blitSurfaceHeader struct {
	RegionCount uint32
	Filter      bool
}

func (d *DeferredBuffer) BlitSurface(src, dst RenderSurface, regions []TextureRegion, filter bool) error {
	d.record(BlitSurface, blitSurfaceHeader{RegionCount: uint32(len(regions)), Filter: filter}, marshal(regions), src, dst)
	return nil
}

type debugGroupHeader struct {
	NameLen uint32
}

func (d *DeferredBuffer) PushDebugGroup(name string) error {
	d.record(PushDebugGroup, debugGroupHeader{NameLen: uint32(len(name))}, []byte(name))
	return nil
}

func (d *DeferredBuffer) PopDebugGroup() error {
	d.record(PopDebugGroup, struct{}{}, nil)
	return nil
}

type memoryBarrierHeader struct {
	Count uint32
}

func (d *DeferredBuffer) MemoryBarrier(barriers []uint32) error {
	d.record(MemoryBarrier, memoryBarrierHeader{Count: uint32(len(barriers))}, marshal(barriers))
	return nil
}
