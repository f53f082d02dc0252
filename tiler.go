package tiler

import (
	"fmt"
	"reflect"
)

// Tiler decomposes one dense subarray write against one array schema into
// per-tile CopyPlans and materialized tiles (spec §1). It borrows its
// collaborators for the duration of the write: New keeps references to its
// arguments (GetTile reads the schema and buffers) but never copies them.
type Tiler[T Integer] struct {
	schema   Schema[T]
	subarray Subarray[T]
	buffers  map[string]QueryBuffer

	g *geometry[T]
}

// New constructs a Tiler from a schema, a subarray, and the per-attribute
// query buffers that back it. It panics if any construction-time invariant
// of spec §4.1 is violated — a malformed schema/subarray pair is a
// programmer error in the caller, not a runtime condition get_tile should
// report per-call (spec §7: "fatal during construction, non-fatal per
// get_tile call").
func New[T Integer](schema Schema[T], subarray Subarray[T], buffers map[string]QueryBuffer) *Tiler[T] {
	checkWidth[T]()
	checkInvariants(schema, subarray)
	for name := range buffers {
		if !schema.IsAttr(name) {
			panic(newError(KindSchemaMismatch, fmt.Sprintf("buffers reference unrecognized attribute %q", name), nil))
		}
	}

	return &Tiler[T]{
		schema:   schema,
		subarray: subarray,
		buffers:  buffers,
		g:        computeGeometry(schema, subarray),
	}
}

// checkWidth rejects platform-width int/uint/uintptr at construction
// (spec.md §9, DESIGN.md's Open Question decision): T's type set is
// constraints.Signed | constraints.Unsigned, which admits plain int, uint and
// uintptr alongside the 8 fixed-width integer types, but only the fixed-width
// types have a portable, unambiguous cell size. reflect.Kind distinguishes
// Int/Uint/Uintptr (platform width) from Int8/.../Uint64 (fixed width), which
// the type parameter alone cannot.
func checkWidth[T Integer]() {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		panic(fmt.Sprintf("tiler: domain type %T is platform-width; use a fixed-width integer type (int8/uint8 .. int64/uint64)", zero))
	}
}

func checkInvariants[T Integer](schema Schema[T], subarray Subarray[T]) {
	d := schema.DimNum()
	if d < 1 {
		panic(fmt.Sprintf("tiler: schema has %d dimensions, want >= 1", d))
	}
	for dim := 0; dim < d; dim++ {
		dom := schema.Domain(dim)
		sub := subarray.NDRange(dim)
		ext := schema.TileExtent(dim)

		if dom.Hi < dom.Lo {
			panic(fmt.Sprintf("tiler: dimension %d domain [%v, %v] is empty", dim, dom.Lo, dom.Hi))
		}
		if ext <= 0 {
			panic(fmt.Sprintf("tiler: dimension %d tile extent %v is not positive", dim, ext))
		}
		if sub.Lo < dom.Lo || sub.Hi > dom.Hi || sub.Hi < sub.Lo {
			panic(fmt.Sprintf("tiler: dimension %d subarray [%v, %v] is not within domain [%v, %v]", dim, sub.Lo, sub.Hi, dom.Lo, dom.Hi))
		}
	}
}

// TileNum returns the number of tiles of the global tile grid that
// intersect the subarray (spec §4.1).
func (t *Tiler[T]) TileNum() uint64 {
	return t.g.tileNum
}

// CopyPlan returns the CopyPlan for tile id (spec §4.3). id must be in
// [0, TileNum()); an out-of-range id panics, since unlike GetTile this
// accessor has no error return and is meant for callers that have already
// bounds-checked against TileNum (e.g. a driver iterating 0..TileNum()).
func (t *Tiler[T]) CopyPlan(id uint64) CopyPlan {
	if id >= t.g.tileNum {
		panic(fmt.Sprintf("tiler: tile id %d out of range [0, %d)", id, t.g.tileNum))
	}
	return buildCopyPlan(t.g, id)
}

// FirstSubTileCoords returns, for each dimension, the tile coordinate of the
// first tile the subarray touches along that dimension (spec §4.1).
func (t *Tiler[T]) FirstSubTileCoords() []uint64 {
	return append([]uint64(nil), t.g.firstSubTileCoords...)
}

// SubStridesEl returns the element strides of the source buffer, under the
// subarray's own cell order (spec §4.1).
func (t *Tiler[T]) SubStridesEl() []uint64 {
	return append([]uint64(nil), t.g.subStridesEl...)
}

// TileStridesEl returns the element strides within a tile, under the
// schema's tile cell order (spec §4.1).
func (t *Tiler[T]) TileStridesEl() []uint64 {
	return append([]uint64(nil), t.g.tileStridesEl...)
}

// SubTileCoordOffsets returns the strides used to decompose a linear tile id
// into per-dimension tile coordinates (spec §4.2).
func (t *Tiler[T]) SubTileCoordOffsets() []uint64 {
	return append([]uint64(nil), t.g.subTileCoordOffsets...)
}
