// SPDX-License-Identifier: Unlicense OR MIT

// Package gpudriver implements the render-state diff engine (C11) and
// format capability table (C12) behind gpucmd.Target.
//
// Grounded on gioui.org/gpu/internal/opengl.glState's cache-and-diff
// idiom: each bindX/setX method compares the requested value against the
// last-applied one and only issues the underlying driver call on change
// (bindTexture, bindVertexArray, activeTexture, setVertexAttribArray).
// RenderState generalizes that per-field comparison from glState's bound
// object handles to the static pipeline state spec.md §4.11 describes
// (rasterization, multisample, depth/stencil, blend, patch-control-points,
// clip-distance count).
package gpudriver

import "math"

// Unknown is the sentinel a RenderState field holds to mean "this field is
// overridden by DynamicRenderStates at draw time", replacing the source's
// MSL_UNKNOWN/MSL_UNKNOWN_FLOAT constants with Go's native "optional value"
// idiom per spec.md §9 ("prefer Option<T>... remove the sentinel checks")
// — expressed here as a single well-known float rather than a pointer
// field, since RenderState is compared wholesale field-by-field and a
// pointer would defeat equality comparison.
const Unknown = float32(math.MaxFloat32)

// CullMode, CompareOp and BlendFactor mirror the source's rasterization
// and depth/stencil/blend enums closely enough to drive a real driver's
// equivalent calls without re-deriving them here.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

type CompareOp uint8

const (
	CompareNever CompareOp = iota
	CompareLess
	CompareEqual
	CompareLessOrEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterOrEqual
	CompareAlways
)

type BlendFactor uint8

const (
	BlendOne BlendFactor = iota
	BlendZero
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
)

// AttachmentBlendState is one color attachment's blend configuration.
type AttachmentBlendState struct {
	Enable                 bool
	SrcColor, DstColor      BlendFactor
	SrcAlpha, DstAlpha      BlendFactor
}

// RenderState is the static pipeline state spec.md §4.11 calls
// mslRenderState: rasterization + multisample + depth/stencil + blend +
// patch-control-points + clip-distance count. LineWidth set to Unknown
// means "overridden dynamically": Update then leaves line width to
// UpdateDynamic. The bool/enum fields have no dynamic form.
type RenderState struct {
	CullMode                         CullMode
	FrontFaceCCW                     bool
	DepthTestEnable, DepthWriteEnable bool
	DepthCompareOp                   CompareOp
	DepthBiasEnable                  bool
	LineWidth                        float32

	StencilTestEnable bool
	StencilCompareOp  CompareOp

	SeparateAttachmentBlendingEnable bool
	Blend                            [8]AttachmentBlendState

	PatchControlPoints int
	ClipDistanceCount  int

	SampleCount int
}

// Calls is the subset of driver entry points the diff engine issues.
// Grounded on glState's bindX methods, generalized from "bind a cached GL
// object" to "set a cached pipeline field".
type Calls interface {
	SetCullFace(mode CullMode, frontFaceCCW bool)
	SetDepthTest(enable bool)
	SetDepthMask(enable bool)
	SetDepthFunc(op CompareOp)
	SetDepthBias(enable bool)
	SetLineWidth(width float32)
	SetStencilTest(enable bool)
	SetStencilFunc(op CompareOp)
	SetBlend(attachment int, enable bool, srcColor, dstColor, srcAlpha, dstAlpha BlendFactor)
	SetPatchControlPoints(n int)
	SetClipDistanceCount(n int)

	SetDepthBiasValues(constant, clamp, slope float32)
	SetDepthBoundsValues(min, max float32)
	SetStencilReference(front, back uint32)
	SetBlendConstants(c [4]float32)
}

// StateDiffer holds the last-applied RenderState and issues only the driver
// calls implied by a changed field (spec.md invariant #9: applying the same
// state twice issues no calls).
type StateDiffer struct {
	current RenderState
	primed  bool
}

// Update compares new against the last-applied state and issues the
// minimal set of Calls for the difference. A LineWidth of Unknown issues
// no line-width call. Update takes no dynamic state and no Y-inversion
// flag: Unknown fields are not resolved here, and the cull face is applied
// exactly as given, never inverted.
func (d *StateDiffer) Update(new RenderState, calls Calls) {
	resolved := new
	if !d.primed || resolved.CullMode != d.current.CullMode || resolved.FrontFaceCCW != d.current.FrontFaceCCW {
		calls.SetCullFace(resolved.CullMode, resolved.FrontFaceCCW)
	}
	if !d.primed || resolved.DepthTestEnable != d.current.DepthTestEnable {
		calls.SetDepthTest(resolved.DepthTestEnable)
	}
	if !d.primed || resolved.DepthWriteEnable != d.current.DepthWriteEnable {
		calls.SetDepthMask(resolved.DepthWriteEnable)
	}
	if !d.primed || resolved.DepthCompareOp != d.current.DepthCompareOp {
		calls.SetDepthFunc(resolved.DepthCompareOp)
	}
	if !d.primed || resolved.DepthBiasEnable != d.current.DepthBiasEnable {
		calls.SetDepthBias(resolved.DepthBiasEnable)
	}
	if resolved.LineWidth != Unknown && (!d.primed || resolved.LineWidth != d.current.LineWidth) {
		calls.SetLineWidth(resolved.LineWidth)
	}
	if !d.primed || resolved.StencilTestEnable != d.current.StencilTestEnable {
		calls.SetStencilTest(resolved.StencilTestEnable)
	}
	if !d.primed || resolved.StencilCompareOp != d.current.StencilCompareOp {
		calls.SetStencilFunc(resolved.StencilCompareOp)
	}
	d.updateBlend(resolved, calls)
	if !d.primed || resolved.PatchControlPoints != d.current.PatchControlPoints {
		calls.SetPatchControlPoints(resolved.PatchControlPoints)
	}
	if !d.primed || resolved.ClipDistanceCount != d.current.ClipDistanceCount {
		calls.SetClipDistanceCount(resolved.ClipDistanceCount)
	}
	d.current = resolved
	d.primed = true
}

// updateBlend issues per-attachment blend calls when
// SeparateAttachmentBlendingEnable, otherwise broadcasts attachment 0's
// values via the non-indexed entry point (spec.md §4.11).
func (d *StateDiffer) updateBlend(new RenderState, calls Calls) {
	if new.SeparateAttachmentBlendingEnable {
		for i, b := range new.Blend {
			if !d.primed || b != d.current.Blend[i] {
				calls.SetBlend(i, b.Enable, b.SrcColor, b.DstColor, b.SrcAlpha, b.DstAlpha)
			}
		}
		return
	}
	b := new.Blend[0]
	if !d.primed || b != d.current.Blend[0] || d.current.SeparateAttachmentBlendingEnable {
		calls.SetBlend(0, b.Enable, b.SrcColor, b.DstColor, b.SrcAlpha, b.DstAlpha)
	}
}

// UpdateDynamic applies only the dynamically-overridable subset of state
// (spec.md §4.11's updateDynamicGLState): depth-bias values, line width,
// depth bounds, front/back stencil references and blend constants. Stencil
// compare and write masks are not part of DynamicState and are not set.
// It never touches the static fields Update manages.
func (d *StateDiffer) UpdateDynamic(dynamic DynamicState, calls Calls) {
	calls.SetDepthBiasValues(dynamic.DepthBiasConstant, dynamic.DepthBiasClamp, dynamic.DepthBiasSlope)
	calls.SetLineWidth(dynamic.LineWidth)
	calls.SetDepthBoundsValues(dynamic.DepthBoundsMin, dynamic.DepthBoundsMax)
	calls.SetStencilReference(dynamic.FrontStencilReference, dynamic.BackStencilReference)
	calls.SetBlendConstants(dynamic.BlendConstants)
}

// DynamicState mirrors gpucmd.DynamicRenderStates; duplicated here (rather
// than imported) so gpudriver has no dependency on gpucmd's wire encoding,
// only on the value shape. No type in this package converts between the
// two; that is left to whatever implements gpucmd.Target.
type DynamicState struct {
	DepthBiasConstant, DepthBiasClamp, DepthBiasSlope float32
	LineWidth                                         float32
	DepthBoundsMin, DepthBoundsMax                     float32
	FrontStencilReference, BackStencilReference        uint32
	BlendConstants                                     [4]float32
}
