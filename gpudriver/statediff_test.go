// SPDX-License-Identifier: Unlicense OR MIT

package gpudriver

import "testing"

type recordingCalls struct {
	calls []string
}

func (r *recordingCalls) SetCullFace(mode CullMode, frontFaceCCW bool) { r.calls = append(r.calls, "cullFace") }
func (r *recordingCalls) SetDepthTest(enable bool)                    { r.calls = append(r.calls, "depthTest") }
func (r *recordingCalls) SetDepthMask(enable bool)                    { r.calls = append(r.calls, "depthMask") }
func (r *recordingCalls) SetDepthFunc(op CompareOp)                   { r.calls = append(r.calls, "depthFunc") }
func (r *recordingCalls) SetDepthBias(enable bool)                    { r.calls = append(r.calls, "depthBias") }
func (r *recordingCalls) SetLineWidth(width float32)                  { r.calls = append(r.calls, "lineWidth") }
func (r *recordingCalls) SetStencilTest(enable bool)                  { r.calls = append(r.calls, "stencilTest") }
func (r *recordingCalls) SetStencilFunc(op CompareOp)                 { r.calls = append(r.calls, "stencilFunc") }
func (r *recordingCalls) SetBlend(attachment int, enable bool, srcColor, dstColor, srcAlpha, dstAlpha BlendFactor) {
	r.calls = append(r.calls, "blend")
}
func (r *recordingCalls) SetPatchControlPoints(n int) { r.calls = append(r.calls, "patchControlPoints") }
func (r *recordingCalls) SetClipDistanceCount(n int)  { r.calls = append(r.calls, "clipDistanceCount") }
func (r *recordingCalls) SetDepthBiasValues(constant, clamp, slope float32) {
	r.calls = append(r.calls, "depthBiasValues")
}
func (r *recordingCalls) SetDepthBoundsValues(min, max float32) {
	r.calls = append(r.calls, "depthBoundsValues")
}
func (r *recordingCalls) SetStencilReference(front, back uint32) {
	r.calls = append(r.calls, "stencilReference")
}
func (r *recordingCalls) SetBlendConstants(c [4]float32) { r.calls = append(r.calls, "blendConstants") }

func defaultState() RenderState {
	return RenderState{LineWidth: 1}
}

func TestUpdateSameStateIssuesNoCalls(t *testing.T) {
	var d StateDiffer
	calls := &recordingCalls{}
	d.Update(defaultState(), calls)
	calls.calls = nil
	d.Update(defaultState(), calls)
	if len(calls.calls) != 0 {
		t.Errorf("calls for an unchanged state = %v, want none", calls.calls)
	}
}

func TestUpdateSingleFieldChangeIssuesOneCall(t *testing.T) {
	var d StateDiffer
	calls := &recordingCalls{}
	d.Update(defaultState(), calls)
	calls.calls = nil

	changed := defaultState()
	changed.DepthWriteEnable = true
	d.Update(changed, calls)

	if len(calls.calls) != 1 || calls.calls[0] != "depthMask" {
		t.Errorf("calls = %v, want exactly [depthMask]", calls.calls)
	}
}

func TestUpdateBroadcastsAttachmentZeroWhenNotSeparate(t *testing.T) {
	var d StateDiffer
	calls := &recordingCalls{}
	s := defaultState()
	s.Blend[0].Enable = true
	d.Update(s, calls)

	count := 0
	for _, c := range calls.calls {
		if c == "blend" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("blend calls = %d, want 1 (broadcast via the non-indexed entry point)", count)
	}
}

func TestUpdateSeparateBlendingIssuesPerAttachment(t *testing.T) {
	var d StateDiffer
	calls := &recordingCalls{}
	s := defaultState()
	s.SeparateAttachmentBlendingEnable = true
	s.Blend[2].Enable = true
	d.Update(s, calls)

	count := 0
	for _, c := range calls.calls {
		if c == "blend" {
			count++
		}
	}
	if count != len(s.Blend) {
		t.Errorf("blend calls = %d, want %d (one per attachment)", count, len(s.Blend))
	}
}

func TestQueryUnsupportedCombinationReturnsFalse(t *testing.T) {
	table := NewTable()
	table.Set(FormatR8G8B8A8Unorm, DriverTriple{InternalFormat: 1}, UsageTexture)

	if _, ok := table.Query(FormatR8G8B8A8Unorm, UsageVertex); ok {
		t.Error("Query(..., UsageVertex) = true, want false (format wasn't registered for vertex use)")
	}
	triple, ok := table.Query(FormatR8G8B8A8Unorm, UsageTexture)
	if !ok || triple.InternalFormat != 1 {
		t.Errorf("Query(..., UsageTexture) = %+v, %v, want {1,...}, true", triple, ok)
	}
}

func TestQueryUnknownFormatReturnsFalse(t *testing.T) {
	table := NewTable()
	if _, ok := table.Query(FormatBC7Unorm, UsageTexture); ok {
		t.Error("Query on an unregistered compressed format returned true")
	}
}
