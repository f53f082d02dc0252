package tiler

// DimRange is one retained dimension of a CopyPlan's N-D iteration box: Dim
// is the geometry dimension index (used to look up SubStridesEl[Dim] /
// TileStridesEl[Dim] when advancing through the loop), Lo/Hi are the
// inclusive iteration bounds; Lo is always 0 (spec §3: "lo always 0") and
// Hi is width-1 for a retained dimension. When no dimension is retained (D==1,
// or every dimension fused into CopyEl) the plan holds the single entry
// {Dim: 0, Lo: 0, Hi: 0}, meaning one pass.
type DimRange struct {
	Dim    int
	Lo, Hi uint64
}

// Width returns the number of steps this dimension contributes.
func (r DimRange) Width() uint64 {
	return r.Hi - r.Lo + 1
}

// CopyPlan is the per-tile record of spec §3/§4.3: a starting offset into
// the source buffer, a starting offset into the destination tile, a
// contiguous-run length, and an N-D loop specification over whatever
// dimensions could not be fused into that run.
//
// Invariant: CopyEl * prod(r.Width() for r in DimRanges) equals the number
// of cells in the intersection of the tile and the subarray — the plan
// enumerates exactly the cells in that intersection, no more, no fewer.
type CopyPlan struct {
	CopyEl        uint64
	DimRanges     []DimRange
	SubStartEl    uint64
	TileStartEl   uint64
	SubStridesEl  []uint64
	TileStridesEl []uint64
}

// buildCopyPlan computes the CopyPlan for one tile id (spec §4.3).
func buildCopyPlan[T Integer](g *geometry[T], id uint64) CopyPlan {
	tileBox := g.tileSubarray(id)

	subInTile := make([]Range[T], g.dimNum)
	widths := make([]uint64, g.dimNum)
	for dim := 0; dim < g.dimNum; dim++ {
		lo := tileBox[dim].Lo
		if g.subRange[dim].Lo > lo {
			lo = g.subRange[dim].Lo
		}
		hi := tileBox[dim].Hi
		if g.subRange[dim].Hi < hi {
			hi = g.subRange[dim].Hi
		}
		subInTile[dim] = Range[T]{Lo: lo, Hi: hi}
		widths[dim] = uint64(hi-lo) + 1
	}

	var subStartEl, tileStartEl uint64
	for dim := 0; dim < g.dimNum; dim++ {
		subStartEl += uint64(subInTile[dim].Lo-g.subRange[dim].Lo) * g.subStridesEl[dim]
		tileStartEl += uint64(subInTile[dim].Lo-tileBox[dim].Lo) * g.tileStridesEl[dim]
	}

	plan := CopyPlan{
		SubStartEl:    subStartEl,
		TileStartEl:   tileStartEl,
		SubStridesEl:  g.subStridesEl,
		TileStridesEl: g.tileStridesEl,
	}

	switch {
	case g.dimNum == 1:
		plan.CopyEl = widths[0]
		plan.DimRanges = []DimRange{{Dim: 0, Lo: 0, Hi: 0}}

	case g.subOrder != g.tileOrder:
		plan.CopyEl = 1
		plan.DimRanges = make([]DimRange, g.dimNum)
		for dim := 0; dim < g.dimNum; dim++ {
			plan.DimRanges[dim] = DimRange{Dim: dim, Lo: 0, Hi: widths[dim] - 1}
		}

	case g.tileOrder == RowMajor:
		last := g.dimNum - 1
		copyEl := widths[last]
		fusedFrom := last
		for k := last - 1; k >= 0; k-- {
			inner := fusedFrom
			if widths[inner] != uint64(g.ext[inner]) || subInTile[inner] != g.subRange[inner] {
				break
			}
			copyEl *= widths[k]
			fusedFrom = k
		}
		plan.CopyEl = copyEl
		if fusedFrom == 0 {
			plan.DimRanges = []DimRange{{Dim: 0, Lo: 0, Hi: 0}}
		} else {
			plan.DimRanges = make([]DimRange, fusedFrom)
			for dim := 0; dim < fusedFrom; dim++ {
				plan.DimRanges[dim] = DimRange{Dim: dim, Lo: 0, Hi: widths[dim] - 1}
			}
		}

	default: // g.tileOrder == ColMajor
		copyEl := widths[0]
		fusedTo := 0
		for k := 1; k < g.dimNum; k++ {
			outer := fusedTo
			if widths[outer] != uint64(g.ext[outer]) || subInTile[outer] != g.subRange[outer] {
				break
			}
			copyEl *= widths[k]
			fusedTo = k
		}
		plan.CopyEl = copyEl
		if fusedTo == g.dimNum-1 {
			plan.DimRanges = []DimRange{{Dim: 0, Lo: 0, Hi: 0}}
		} else {
			n := g.dimNum - 1 - fusedTo
			plan.DimRanges = make([]DimRange, n)
			for i, dim := 0, fusedTo+1; dim < g.dimNum; i, dim = i+1, dim+1 {
				plan.DimRanges[i] = DimRange{Dim: dim, Lo: 0, Hi: widths[dim] - 1}
			}
		}
	}

	return plan
}
