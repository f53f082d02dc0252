package tiler

import "testing"

func BenchmarkBuildCopyPlan_2D_Fused(b *testing.B) {
	g := computeGeometry[int32](schema2D(RowMajor), sub2D())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buildCopyPlan(g, uint64(i)%g.tileNum)
	}
}

func BenchmarkBuildCopyPlan_2D_Unfused(b *testing.B) {
	g := computeGeometry[int32](schema2D(ColMajor), sub2D())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buildCopyPlan(g, uint64(i)%g.tileNum)
	}
}

func BenchmarkGetTile_1D(b *testing.B) {
	schema := schema1D()
	sub := &fakeSubarray[int32]{layout: RowMajor, ranges: []Range[int32]{intRange(3, 6)}}
	tiler := New[int32](schema, sub, map[string]QueryBuffer{"a": &fakeBuffer{data: le32Slice(1, 2, 3, 4)}})

	var dst fakeTile
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tiler.GetTile(uint64(i)%tiler.TileNum(), "a", &dst)
	}
}

func BenchmarkGetTile_2D_Fused(b *testing.B) {
	schema := schema2D(RowMajor)
	sub := sub2D()
	buf := make([]byte, 0, 15*4)
	for i := int32(0); i < 15; i++ {
		buf = append(buf, le32(i)...)
	}
	tiler := New[int32](schema, sub, map[string]QueryBuffer{"a": &fakeBuffer{data: buf}})

	var dst fakeTile
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tiler.GetTile(uint64(i)%tiler.TileNum(), "a", &dst)
	}
}

func BenchmarkFillTile_ZeroFast(b *testing.B) {
	dst := &fakeTile{}
	dst.InitUnfiltered(0, "int32", 4_000_000, 4, 0)
	zero := make([]byte, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fillTile(dst, zero, 4, 1_000_000)
	}
}

func BenchmarkFillTile_NonZeroBatch(b *testing.B) {
	dst := &fakeTile{}
	dst.InitUnfiltered(0, "int32", 4_000_000, 4, 0)
	fill := le32(int32Min)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fillTile(dst, fill, 4, 1_000_000)
	}
}
