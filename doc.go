// Package tiler decomposes a dense N-dimensional subarray write into a
// sequence of fixed-shape, regularly-aligned tiles over an array's global
// tile grid, filling any cells that fall outside the write's subarray with
// the attribute's configured fill value.
//
// A Tiler is constructed once per write from three borrowed collaborators —
// a Schema, a Subarray, and a map of per-attribute QueryBuffers — and is
// read-only for the rest of its lifetime. Given a linear tile id in
// [0, TileNum()), GetTile materializes one (tile, attribute) pair: it
// initializes the destination Tile, fills it with the attribute's fill
// value, and overlays the portion of the source buffer that intersects the
// tile using the fewest possible contiguous copies.
//
// The hard part is geometric, not algorithmic: translating between three
// coordinate systems (global domain coordinates, subarray-relative buffer
// coordinates, and per-tile local coordinates) under two independent cell
// orderings that may differ between the subarray's buffer layout and the
// array's on-disk tile layout. See CopyPlan for how that translation is
// expressed as a single starting offset, a single contiguous run length, and
// an N-D loop over whatever dimensions could not be fused into the run.
package tiler
