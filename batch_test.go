package tiler

import (
	"sync"
	"testing"
)

func TestMaterializeAll_VisitsEveryTileExactlyOnce(t *testing.T) {
	schema := schema2D(RowMajor)
	sub := sub2D()
	// 3x5 cell subarray, row-major.
	buf := make([]byte, 0, 15*4)
	for i := int32(0); i < 15; i++ {
		buf = append(buf, le32(i)...)
	}
	tiler := New[int32](schema, sub, map[string]QueryBuffer{"a": &fakeBuffer{data: buf}})

	var mu sync.Mutex
	seen := map[uint64]bool{}

	stats, err := MaterializeAll[int32](tiler, "a",
		func() Tile { return &fakeTile{} },
		func(id uint64, name string, tile Tile, allFill bool) error {
			mu.Lock()
			seen[id] = true
			mu.Unlock()
			return nil
		},
		BatchOptions{Concurrency: 4},
	)
	if err != nil {
		t.Fatalf("MaterializeAll: %v", err)
	}
	if uint64(len(seen)) != tiler.TileNum() {
		t.Errorf("visited %d distinct tiles, want %d", len(seen), tiler.TileNum())
	}
	if stats.TilesWritten != int64(tiler.TileNum()) {
		t.Errorf("stats.TilesWritten = %d, want %d", stats.TilesWritten, tiler.TileNum())
	}
}

func TestMaterializeAll_StopsOnFirstSinkError(t *testing.T) {
	schema := schema1D()
	sub := &fakeSubarray[int32]{layout: RowMajor, ranges: []Range[int32]{intRange(3, 6)}}
	tiler := New[int32](schema, sub, map[string]QueryBuffer{"a": &fakeBuffer{data: le32Slice(1, 2, 3, 4)}})

	sinkErr := &Error{Kind: KindTileWriteFailure, Context: "forced"}
	calls := 0
	_, err := MaterializeAll[int32](tiler, "a",
		func() Tile { return &fakeTile{} },
		func(id uint64, name string, tile Tile, allFill bool) error { calls++; return sinkErr },
		BatchOptions{Concurrency: 1},
	)
	if err == nil {
		t.Fatal("expected error from sink to propagate")
	}
	if calls != 1 {
		t.Errorf("sink called %d times, want 1 (the single worker stops after the first error)", calls)
	}
}

func TestMaterializeAll_ZeroConcurrencyFallsBackToOneWorker(t *testing.T) {
	schema := schema1D()
	sub := &fakeSubarray[int32]{layout: RowMajor, ranges: []Range[int32]{intRange(3, 6)}}
	tiler := New[int32](schema, sub, map[string]QueryBuffer{"a": &fakeBuffer{data: le32Slice(1, 2, 3, 4)}})

	calls := 0
	stats, err := MaterializeAll[int32](tiler, "a",
		func() Tile { return &fakeTile{} },
		func(id uint64, name string, tile Tile, allFill bool) error { calls++; return nil },
		BatchOptions{Concurrency: 0},
	)
	if err != nil {
		t.Fatalf("MaterializeAll: %v", err)
	}
	if calls != int(tiler.TileNum()) {
		t.Errorf("sink called %d times, want %d (Concurrency<1 falls back to 1 worker)", calls, tiler.TileNum())
	}
	if stats.TilesWritten == 0 {
		t.Error("expected TilesWritten > 0")
	}
}
