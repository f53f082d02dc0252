package tiler

// formatVersion is forwarded to Tile.InitUnfiltered; the tiler never reads
// or depends on it, it only needs a value to pass through. 0 means
// "unversioned" in the absence of any schema-supplied version.
const formatVersion uint32 = 0

// GetTile materializes tile id of attribute name into dst (spec §4.4):
// it initializes dst as unfiltered with the attribute's type/size, fills it
// entirely with the attribute's fill value, overlays the portion of the
// source buffer that intersects the tile using the fewest possible
// contiguous writes, and resets dst's write cursor before returning.
//
// The second return value reports whether the produced tile turned out to
// be pure fill value end to end — every cell the subarray actually covered
// happened to equal the fill byte pattern too. This is the same
// "uniform tile" signal as internal/tile/tiledata.go's detectUniform,
// computed analytically from the source bytes during the copy loop (the
// Tile collaborator is write-only, so the result can't be read back and
// rescanned the way the teacher rescans a finished image.RGBA).
func (t *Tiler[T]) GetTile(id uint64, name string, dst Tile) (allFill bool, err error) {
	if id >= t.g.tileNum {
		return false, newError(KindInvalidTileId, contextID(id), nil)
	}
	if !t.schema.IsAttr(name) {
		return false, newError(KindUnknownAttribute, name, nil)
	}
	if t.schema.VarSize(name) {
		return false, newError(KindVarSizedNotSupported, name, nil)
	}

	cellSize := t.schema.CellSize(name)
	totalSize := t.g.cellsPerTile * cellSize

	if err := dst.InitUnfiltered(formatVersion, t.schema.Type(name), totalSize, cellSize, 0); err != nil {
		return false, newError(KindTileInitFailure, contextTile(id, name), err)
	}

	if err := fillTile(dst, t.schema.FillValue(name), cellSize, t.g.cellsPerTile); err != nil {
		return false, newError(KindTileWriteFailure, contextTile(id, name), err)
	}

	plan := buildCopyPlan(t.g, id)
	src := t.buffers[name].Bytes()
	fillBytes := t.schema.FillValue(name)

	allFill, err = overlaySubarray(dst, src, plan, cellSize, fillBytes)
	if err != nil {
		return false, newError(KindTileWriteFailure, contextTile(id, name), err)
	}

	dst.ResetOffset()
	return allFill, nil
}

// fillTile overwrites the entire tile with the fill value (spec §4.4 step
// 2). When the fill value is all zero, it writes a single guaranteed-zeroed
// buffer instead of repeating a batch (spec §9's zero-fill optimization,
// decided in SPEC_FULL.md §3).
func fillTile(dst Tile, fillValue []byte, cellSize, cells uint64) error {
	totalSize := cellSize * cells
	if isZero(fillValue) {
		zero := make([]byte, totalSize)
		return dst.WriteAt(zero, 0)
	}

	batchCells := cells
	if batchCells > fillBatchCells {
		batchCells = fillBatchCells
	}
	batch := getFillBatch(cellSize, batchCells)
	defer putFillBatch(cellSize, batchCells, batch)
	for i := uint64(0); i < batchCells; i++ {
		copy(batch[i*cellSize:(i+1)*cellSize], fillValue)
	}

	var written uint64
	for written < totalSize {
		n := uint64(len(batch))
		if remaining := totalSize - written; remaining < n {
			n = remaining
		}
		if err := dst.WriteAt(batch[:n], written); err != nil {
			return err
		}
		written += n
	}
	return nil
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// overlaySubarray drives the CopyPlan's N-D loop (spec §4.4 steps 3-4): it
// iterates plan.DimRanges in row-major order regardless of the tiler's own
// sub/tile order (that loop is purely mechanical over the retained dims),
// issuing one contiguous write per innermost slab, and reports whether
// every copied byte equaled the attribute's fill pattern.
func overlaySubarray(dst Tile, src []byte, plan CopyPlan, cellSize uint64, fillValue []byte) (allFill bool, err error) {
	copyBytes := plan.CopyEl * cellSize
	allFill = true

	dims := len(plan.DimRanges)
	idx := make([]uint64, dims)

	for {
		var subOffsetEl, tileOffsetEl uint64
		for d := 0; d < dims; d++ {
			dr := plan.DimRanges[d]
			subOffsetEl += idx[d] * plan.SubStridesEl[dr.Dim]
			tileOffsetEl += idx[d] * plan.TileStridesEl[dr.Dim]
		}
		subOffset := (plan.SubStartEl + subOffsetEl) * cellSize
		tileOffset := (plan.TileStartEl + tileOffsetEl) * cellSize

		slab := src[subOffset : subOffset+copyBytes]
		if allFill && !isRepeatingFill(slab, fillValue) {
			allFill = false
		}
		if err := dst.WriteAt(slab, tileOffset); err != nil {
			return false, err
		}

		// Standard odometer carry: advance the innermost retained dim;
		// when it wraps, carry into the dim to its left and reset every
		// dim to its right (spec §4.4 step 4).
		d := dims - 1
		for d >= 0 {
			idx[d]++
			if idx[d] <= plan.DimRanges[d].Hi {
				break
			}
			idx[d] = plan.DimRanges[d].Lo
			d--
		}
		if d < 0 {
			break
		}
	}

	return allFill, nil
}

func isRepeatingFill(data, pattern []byte) bool {
	if len(pattern) == 0 {
		return len(data) == 0
	}
	for i, b := range data {
		if b != pattern[i%len(pattern)] {
			return false
		}
	}
	return true
}
