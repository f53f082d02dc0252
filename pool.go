package tiler

import "sync"

// fillBatchCells is the implementation knob spec §9 flags as not contractual:
// the fill step writes the attribute's fill value in batches of at most
// this many cells rather than one cell (or one tile) at a time.
const fillBatchCells = 1_000_000

// fillBatchKey identifies a pooled fill-batch buffer by (cell size, cell
// count). Grounded on internal/tile/rgbapool.go's rgbaPoolKey{w,h}, which
// pools *image.RGBA buffers by dimension instead of reallocating per tile;
// here the pooled unit is a plain byte slice sized for the repeated-fill
// copy loop (spec §4.4 step 2).
type fillBatchKey struct {
	cellSize uint64
	cells    uint64
}

// fillBatchPools maps fillBatchKey -> *sync.Pool of []byte. A sync.Map is
// used for the same reason as the teacher's rgbaPools: in practice only a
// handful of distinct (cellSize, cells) pairs exist per process, so the map
// stays tiny and the lock-free read path matters more than map overhead.
var fillBatchPools sync.Map

// getFillBatch returns a byte slice of length cellSize*cells from the pool,
// or allocates a new one. Callers must fill its contents before use — unlike
// the teacher's GetRGBA, the buffer is not cleared, since the caller always
// overwrites every byte with the repeated fill pattern immediately.
func getFillBatch(cellSize, cells uint64) []byte {
	key := fillBatchKey{cellSize, cells}
	if p, ok := fillBatchPools.Load(key); ok {
		if v := p.(*sync.Pool).Get(); v != nil {
			return v.([]byte)
		}
	}
	return make([]byte, cellSize*cells)
}

// putFillBatch returns buf to the pool for reuse. Nil slices are ignored.
func putFillBatch(cellSize, cells uint64, buf []byte) {
	if buf == nil {
		return
	}
	key := fillBatchKey{cellSize, cells}
	p, _ := fillBatchPools.LoadOrStore(key, &sync.Pool{})
	p.(*sync.Pool).Put(buf) //nolint:staticcheck // pool stores []byte by design, not a pointer
}
