// SPDX-License-Identifier: Unlicense OR MIT

package gpucmd

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/vectorforge/tessel/errs"
)

func unmarshal(data []byte, v any) []byte {
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		panic(err)
	}
	return data[len(data)-r.Len():]
}

// Submit walks the record stream in insertion order and dispatches each
// record to target. Per usage, it resets afterward unless usage includes
// both MultiSubmit and MultiFrame.
func (d *DeferredBuffer) Submit(target Target) error {
	for i, e := range d.a.records {
		body := d.a.data[e.Offset : e.Offset+e.Length]
		refs := d.a.refs[e.RefStart : e.RefStart+e.RefCount]
		if err := dispatch(target, e.Type, body, refs); err != nil {
			return errs.E(fmt.Sprintf("gpucmd.Submit: record %d", i), errs.Driver, err)
		}
	}
	if d.usage&(MultiSubmit|MultiFrame) != MultiSubmit|MultiFrame {
		d.Reset()
	}
	return nil
}

// SubmitBuffer always fails: only a LiveBuffer accepts the submission of
// another buffer (spec.md §4.9).
func (d *DeferredBuffer) SubmitBuffer(other *DeferredBuffer) error {
	return errs.E("gpucmd.DeferredBuffer.SubmitBuffer", errs.PermissionDenied)
}

// Reset releases every owned reference and truncates the record stream,
// keeping the arena's backing storage for reuse.
func (d *DeferredBuffer) Reset() {
	d.a.reset()
}

func dispatch(t Target, rt RecordType, body []byte, refs []any) error {
	switch rt {
	case CopyBufferData:
		var h copyBufferDataHeader
		rest := unmarshal(body, &h)
		return t.CopyBufferData(refs[0], h.Offset, rest[:h.DataLen])
	case CopyBuffer:
		var h regionCountHeader
		rest := unmarshal(body, &h)
		regions := make([]BufferRegion, h.RegionCount)
		unmarshal(rest, &regions)
		return t.CopyBuffer(refs[0], refs[1], regions)
	case CopyBufferToTexture:
		var h regionCountHeader
		rest := unmarshal(body, &h)
		regions := make([]TextureRegion, h.RegionCount)
		unmarshal(rest, &regions)
		return t.CopyBufferToTexture(refs[0], refs[1], regions)
	case CopyTextureData:
		var h copyTextureDataHeader
		rest := unmarshal(body, &h)
		return t.CopyTextureData(refs[0], h.Position, h.Width, h.Height, rest[:h.DataLen])
	case CopyTexture:
		var h regionCountHeader
		rest := unmarshal(body, &h)
		regions := make([]TextureRegion, h.RegionCount)
		unmarshal(rest, &regions)
		return t.CopyTexture(refs[0], refs[1], regions)
	case CopyTextureToBuffer:
		var h regionCountHeader
		rest := unmarshal(body, &h)
		regions := make([]TextureRegion, h.RegionCount)
		unmarshal(rest, &regions)
		return t.CopyTextureToBuffer(refs[0], refs[1], regions)
	case GenerateMipmaps:
		return t.GenerateMipmaps(refs[0])
	case SetFenceSyncs:
		var h setFenceSyncsHeader
		unmarshal(body, &h)
		syncs := make([]Sync, len(refs))
		for i, r := range refs {
			syncs[i] = r
		}
		return t.SetFenceSyncs(syncs, h.BufferReadback, h.Flush)
	case BeginQuery:
		var h queryIndexHeader
		unmarshal(body, &h)
		return t.BeginQuery(refs[0], h.Index)
	case EndQuery:
		var h queryIndexHeader
		unmarshal(body, &h)
		return t.EndQuery(refs[0], h.Index)
	case TimestampQuery:
		var h queryIndexHeader
		unmarshal(body, &h)
		return t.TimestampQuery(refs[0], h.Index)
	case CopyQueryValues:
		var h copyQueryValuesHeader
		unmarshal(body, &h)
		return t.CopyQueryValues(refs[0], h.First, h.Count, refs[1], h.Offset, h.Stride, h.As64Bit)
	case BindShader:
		var h bindShaderHeader
		unmarshal(body, &h)
		var dyn *DynamicRenderStates
		if h.HasDynamic {
			dyn = &h.Dynamic
		}
		return t.BindShader(refs[0], dyn)
	case SetTexture:
		var h shaderElementHeader
		unmarshal(body, &h)
		return t.SetTexture(refs[0], h.Element, refs[1])
	case SetTextureBuffer:
		var h shaderElementHeader
		unmarshal(body, &h)
		return t.SetTextureBuffer(refs[0], h.Element, refs[1])
	case SetShaderBuffer:
		var h shaderElementHeader
		unmarshal(body, &h)
		return t.SetShaderBuffer(refs[0], h.Element, refs[1])
	case SetUniform:
		var h setUniformHeader
		rest := unmarshal(body, &h)
		return t.SetUniform(refs[0], h.Element, rest[:h.DataLen])
	case UpdateDynamicRenderStates:
		var h dynamicStatesHeader
		unmarshal(body, &h)
		return t.UpdateDynamicRenderStates(h.Dynamic)
	case UnbindShader:
		return t.UnbindShader(refs[0])
	case BindComputeShader:
		return t.BindComputeShader(refs[0])
	case UnbindComputeShader:
		return t.UnbindComputeShader(refs[0])
	case BeginRenderSurface:
		return t.BeginRenderSurface(refs[0])
	case EndRenderSurface:
		return t.EndRenderSurface(refs[0])
	case BeginRenderPass:
		var h beginRenderPassHeader
		rest := unmarshal(body, &h)
		clears := make([]ClearValue, h.ClearCount)
		unmarshal(rest, &clears)
		return t.BeginRenderPass(refs[0], clears)
	case NextSubpass:
		return t.NextSubpass()
	case EndRenderPass:
		return t.EndRenderPass()
	case SetViewport:
		var h setViewportHeader
		unmarshal(body, &h)
		return t.SetViewport(h.V)
	case ClearAttachments:
		var h clearCountHeader
		rest := unmarshal(body, &h)
		values := make([]ClearValue, h.Count)
		unmarshal(rest, &values)
		return t.ClearAttachments(values)
	case Draw:
		var h drawHeader
		unmarshal(body, &h)
		return t.Draw(h.VertexCount, h.InstanceCount, h.FirstVertex, h.FirstInstance)
	case DrawIndexed:
		var h drawIndexedHeader
		unmarshal(body, &h)
		return t.DrawIndexed(h.IndexCount, h.InstanceCount, h.FirstIndex, h.BaseVertex, h.FirstInstance)
	case DrawIndirect:
		var h indirectHeader
		unmarshal(body, &h)
		return t.DrawIndirect(refs[0], h.Offset)
	case DrawIndexedIndirect:
		var h indirectHeader
		unmarshal(body, &h)
		return t.DrawIndexedIndirect(refs[0], h.Offset)
	case DispatchCompute:
		var h dispatchHeader
		unmarshal(body, &h)
		return t.DispatchCompute(h.X, h.Y, h.Z)
	case DispatchComputeIndirect:
		var h indirectHeader
		unmarshal(body, &h)
		return t.DispatchComputeIndirect(refs[0], h.Offset)
	case BlitSurface:
		var h blitSurfaceHeader
		rest := unmarshal(body, &h)
		regions := make([]TextureRegion, h.RegionCount)
		unmarshal(rest, &regions)
		return t.BlitSurface(refs[0], refs[1], regions, h.Filter)
	case PushDebugGroup:
		var h debugGroupHeader
		rest := unmarshal(body, &h)
		return t.PushDebugGroup(string(rest[:h.NameLen]))
	case PopDebugGroup:
		return t.PopDebugGroup()
	case MemoryBarrier:
		var h memoryBarrierHeader
		rest := unmarshal(body, &h)
		barriers := make([]uint32, h.Count)
		unmarshal(rest, &barriers)
		return t.MemoryBarrier(barriers)
	default:
		return errs.E("gpucmd.dispatch", errs.InvalidArg)
	}
}
