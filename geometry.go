package tiler

// geometry holds the five precomputed arrays of spec §3/§4.1. It is derived
// once at Tiler construction from (schema, subarray) and never mutated
// afterwards — every other component reads it, none writes it.
type geometry[T Integer] struct {
	dimNum    int
	tileOrder CellOrder
	subOrder  CellOrder

	domain   []Range[T] // dom_lo[d], dom_hi[d]
	ext      []T        // ext[d]
	subRange []Range[T] // sub_lo[d], sub_hi[d]

	tileNum      uint64
	cellsPerTile uint64 // prod_d ext[d], the fixed cell count of every tile

	firstSubTileCoords  []uint64 // (sub_lo[d] - dom_lo[d]) / ext[d]
	tileStridesEl       []uint64 // element strides inside a tile, under tile_order
	subStridesEl        []uint64 // element strides inside the source buffer, under sub_order
	subTileCoordOffsets []uint64 // linear tile id -> N-D tile coords, under tile_order

	// tilesPerDim[d] is the number of distinct tile indices along dimension
	// d that intersect the subarray; used to build subTileCoordOffsets and
	// to decompose a linear id in the resolver.
	tilesPerDim []uint64
}

// computeGeometry derives the geometry of spec §4.1 from a schema and
// subarray already known to satisfy the construction-time invariants
// (checked by the caller: non-empty dims, subarray within domain, positive
// extents).
func computeGeometry[T Integer](schema Schema[T], subarray Subarray[T]) *geometry[T] {
	d := schema.DimNum()

	g := &geometry[T]{
		dimNum:    d,
		tileOrder: schema.TileOrder(),
		subOrder:  subarray.Layout(),
		domain:    make([]Range[T], d),
		ext:       make([]T, d),
		subRange:  make([]Range[T], d),

		firstSubTileCoords:  make([]uint64, d),
		tileStridesEl:       make([]uint64, d),
		subStridesEl:        make([]uint64, d),
		subTileCoordOffsets: make([]uint64, d),
		tilesPerDim:         make([]uint64, d),
	}

	for dim := 0; dim < d; dim++ {
		g.domain[dim] = schema.Domain(dim)
		g.ext[dim] = schema.TileExtent(dim)
		g.subRange[dim] = subarray.NDRange(dim)

		// Truncated division is floor division here because sub_lo[d] >=
		// dom_lo[d] (subarray-within-domain invariant), so the numerator
		// is always non-negative (spec §4.1).
		lowOffset := g.subRange[dim].Lo - g.domain[dim].Lo
		g.firstSubTileCoords[dim] = uint64(lowOffset) / uint64(g.ext[dim])

		g.tilesPerDim[dim] = perDimTileCount(g.domain[dim].Lo, g.subRange[dim], g.ext[dim])
	}

	if n, ok := schema.TileNumInRange(g.subRange); ok {
		g.tileNum = n
	} else {
		g.tileNum = 1
		for dim := 0; dim < d; dim++ {
			g.tileNum *= g.tilesPerDim[dim]
		}
	}

	g.cellsPerTile = 1
	for dim := 0; dim < d; dim++ {
		g.cellsPerTile *= uint64(g.ext[dim])
	}

	extentsOf := func(dim int) uint64 { return uint64(g.ext[dim]) }
	subExtentsOf := func(dim int) uint64 { return g.subRange[dim].Width() }

	computeStrides(g.tileStridesEl, d, g.tileOrder, extentsOf)
	computeStrides(g.subStridesEl, d, g.subOrder, subExtentsOf)
	computeStrides(g.subTileCoordOffsets, d, g.tileOrder, func(dim int) uint64 { return g.tilesPerDim[dim] })

	return g
}

// perDimTileCount returns the number of distinct tile indices along one
// dimension that intersect [sub.Lo, sub.Hi], given the domain's low edge
// and the tile extent, per spec §4.1's tile_num formula factor:
// floor((sub_hi-dom_lo)/ext) - floor((sub_lo-dom_lo)/ext) + 1.
func perDimTileCount[T Integer](domLo T, sub Range[T], ext T) uint64 {
	hi := uint64(sub.Hi-domLo) / uint64(ext)
	lo := uint64(sub.Lo-domLo) / uint64(ext)
	return hi - lo + 1
}

// computeStrides fills strides[d] for d in [0,dimNum) from the per-dimension
// extent function extentOf, under the given cell order (spec §4.1):
//
//	ROW: strides[D-1] = 1; strides[d] = strides[d+1] * extentOf(d+1)
//	COL: strides[0]   = 1; strides[d] = strides[d-1] * extentOf(d-1)
//
// This single routine implements the "tile strides", "subarray strides",
// and "tile-coord offsets" formulas of spec §4.1, which all share this
// shape and differ only in which per-dimension extent they multiply by.
func computeStrides(strides []uint64, dimNum int, order CellOrder, extentOf func(dim int) uint64) {
	if dimNum == 0 {
		return
	}
	switch order {
	case RowMajor:
		strides[dimNum-1] = 1
		for dim := dimNum - 2; dim >= 0; dim-- {
			strides[dim] = strides[dim+1] * extentOf(dim+1)
		}
	case ColMajor:
		strides[0] = 1
		for dim := 1; dim < dimNum; dim++ {
			strides[dim] = strides[dim-1] * extentOf(dim-1)
		}
	}
}
