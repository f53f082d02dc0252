package tiler

import (
	"golang.org/x/exp/constraints"
)

// Integer is the set of domain coordinate types a Tiler can be instantiated
// over. Its type set is the same as constraints.Integer, so it also admits
// the platform-width int, uint and uintptr; New rejects those, and any T
// outside {int8,uint8,int16,uint16,int32,uint32,int64,uint64}, at
// construction time (see tiler.go:checkWidth).
type Integer interface {
	constraints.Signed | constraints.Unsigned
}

// CellOrder is the linearization order of cells within a tile or a subarray
// buffer: row-major (the last dimension varies fastest) or column-major
// (the first dimension varies fastest).
type CellOrder int

const (
	// RowMajor: the last dimension has stride 1; strides grow right-to-left.
	RowMajor CellOrder = iota
	// ColMajor: the first dimension has stride 1; strides grow left-to-right.
	ColMajor
)

func (o CellOrder) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return "unknown-order"
	}
}

// Datatype is an opaque type tag handed back by Schema.Type and forwarded
// unexamined to Tile.InitUnfiltered; the tiler never interprets it.
type Datatype string

// Range is an inclusive [Lo, Hi] bound along one dimension, in domain
// coordinate type T.
type Range[T Integer] struct {
	Lo, Hi T
}

// Width returns the number of cells the range spans.
func (r Range[T]) Width() uint64 {
	return uint64(r.Hi-r.Lo) + 1
}

// Schema is the consumed, not-owned array schema collaborator (spec §6).
// It exposes dimension/domain/tile-extent metadata and per-attribute
// metadata. Implementations are borrowed by a Tiler for the duration of one
// write and must outlive it.
type Schema[T Integer] interface {
	// DimNum returns the number of dimensions D >= 1.
	DimNum() int

	// TileOrder returns the global tile cell order.
	TileOrder() CellOrder

	// Domain returns the domain bound [dom_lo[d], dom_hi[d]] for dimension d.
	Domain(d int) Range[T]

	// TileExtent returns the tile extent ext[d] > 0 for dimension d.
	TileExtent(d int) T

	// TileNumInRange returns the number of tiles of the global tile grid
	// that intersect the given per-dimension range, when the schema can
	// compute this more directly than the Tiler's own fallback formula.
	// The second return value is false if the schema has no such
	// optimization, in which case the Tiler computes it from Domain/TileExtent.
	TileNumInRange(rng []Range[T]) (uint64, bool)

	// IsAttr reports whether name is a recognized attribute.
	IsAttr(name string) bool

	// CellSize returns the fixed per-cell byte size of a recognized attribute.
	CellSize(name string) uint64

	// Type returns the attribute's datatype tag, forwarded to Tile.InitUnfiltered.
	Type(name string) Datatype

	// VarSize reports whether the attribute is variable-sized. The tiler
	// rejects var-sized attributes with VarSizedNotSupported.
	VarSize(name string) bool

	// FillValue returns the attribute's fill-value bytes, of length CellSize(name).
	FillValue(name string) []byte
}

// Subarray is the consumed, not-owned subarray collaborator (spec §6): a
// single unary N-D range plus the traversal order of its backing buffers.
type Subarray[T Integer] interface {
	// Layout returns the traversal order of the subarray's query buffers.
	Layout() CellOrder

	// NDRange returns the unary range for dimension d. Only range index 0
	// is ever queried by this module (multi-range subarrays are a non-goal).
	NDRange(d int) Range[T]
}

// QueryBuffer is the consumed, not-owned per-attribute source buffer
// collaborator (spec §6): a contiguous byte region laid out in the
// subarray's Layout() order over the subarray box.
type QueryBuffer interface {
	// Bytes returns the buffer's contiguous backing storage. Its length
	// must equal prod(sub_hi[d]-sub_lo[d]+1) * cell_size.
	Bytes() []byte
}

// Tile is the consumed, not-owned destination tile collaborator (spec §6):
// a writable byte buffer with a cursor, a type tag, and a cell size.
type Tile interface {
	// InitUnfiltered configures the tile as unfiltered, with the given
	// format version, type tag, total byte size, and cell size, with the
	// write cursor positioned at initialOffset.
	InitUnfiltered(formatVersion uint32, typ Datatype, totalSize, cellSize, initialOffset uint64) error

	// Write appends src at the current cursor and advances it by len(src).
	Write(src []byte) error

	// WriteAt writes src at the given absolute byte offset without moving
	// the cursor.
	WriteAt(src []byte, offset uint64) error

	// ResetOffset resets the write cursor to 0.
	ResetOffset()

	// Size returns the tile's total byte size.
	Size() uint64

	// Offset returns the current write cursor position.
	Offset() uint64
}
