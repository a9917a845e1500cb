// SPDX-License-Identifier: Unlicense OR MIT

package gpudriver

// Format is the engine-facing pixel/vertex format enumeration (dsGfxFormat
// in the source), grouped the way spec.md §4.12 describes: standard
// integer-encoded channel-size formats, compressed formats and special
// packed formats each live in their own subtable below.
type Format uint16

const (
	FormatUnknown Format = iota

	// Standard formats: channel layout × decorator.
	FormatR8Unorm
	FormatR8G8Unorm
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8Srgb
	FormatB8G8R8A8Unorm
	FormatB8G8R8A8Srgb
	FormatR16Float
	FormatR16G16Float
	FormatR16G16B16A16Float
	FormatR32Float
	FormatR32G32Float
	FormatR32G32B32A32Float
	FormatD24UnormS8Uint
	FormatD32Float

	// Compressed formats live in their own range so a capability probe
	// can reject them up front on platforms without texture compression,
	// without falling through the standard-format switch.
	FormatBC1Unorm
	FormatBC3Unorm
	FormatBC7Unorm
	FormatETC2R8G8B8Unorm
	FormatASTC4x4Unorm

	// Special packed formats: channels share bits in nonstandard widths.
	FormatB10G11R11Float
	FormatE5B9G9R9Float
	FormatA2B10G10R10Unorm
)

// Usage is the bitset over {Vertex, Texture, Offscreen, TextureBuffer} a
// format may be queried against.
type Usage uint8

const (
	UsageVertex Usage = 1 << iota
	UsageTexture
	UsageOffscreen
	UsageTextureBuffer
)

// DriverTriple is the (internalFormat, externalFormat, dataType) triple a
// concrete driver backend needs to create or sample a texture of a given
// Format; the three fields are opaque driver-specific enum values (e.g. GL
// constants), stored as plain ints so this package has no driver
// dependency.
type DriverTriple struct {
	InternalFormat int
	ExternalFormat int
	DataType       int
}

type formatEntry struct {
	triple DriverTriple
	usage  Usage
}

// Table is a capability-queryable mapping from Format to driver triple,
// seeded by a feature probe at construction (NewTable's caller supplies
// which optional formats the current driver actually supports).
type Table struct {
	standard   map[Format]formatEntry
	compressed map[Format]formatEntry
	packed     map[Format]formatEntry
}

// NewTable builds an empty capability table; use Set to populate it from a
// driver feature probe (spec.md §4.12: "a static mapping, seeded by
// feature-probe at initialization").
func NewTable() *Table {
	return &Table{
		standard:   make(map[Format]formatEntry),
		compressed: make(map[Format]formatEntry),
		packed:     make(map[Format]formatEntry),
	}
}

// Set records f's driver triple and supported usage bitset in the subtable
// its range belongs to.
func (t *Table) Set(f Format, triple DriverTriple, usage Usage) {
	t.subtableFor(f)[f] = formatEntry{triple: triple, usage: usage}
}

func (t *Table) subtableFor(f Format) map[Format]formatEntry {
	switch {
	case f >= FormatBC1Unorm && f <= FormatASTC4x4Unorm:
		return t.compressed
	case f >= FormatB10G11R11Float:
		return t.packed
	default:
		return t.standard
	}
}

// Query reports whether f supports usage, and if so its driver triple.
// Unsupported combinations return false without touching triple, matching
// spec.md §4.12 exactly.
func (t *Table) Query(f Format, usage Usage) (DriverTriple, bool) {
	e, ok := t.subtableFor(f)[f]
	if !ok || e.usage&usage != usage {
		return DriverTriple{}, false
	}
	return e.triple, true
}
