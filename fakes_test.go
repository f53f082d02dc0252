package tiler

// Test collaborators implementing Schema/Subarray/QueryBuffer/Tile. These
// mirror the minimal fakes a consumer of this package would write; they are
// not a mock framework, in keeping with the teacher's own stdlib-only test
// style (downsample_test.go uses hand-built *image.RGBA fixtures, not a
// mocking library).

type attrInfo struct {
	cellSize uint64
	typ      Datatype
	varSize  bool
	fill     []byte
}

type fakeSchema[T Integer] struct {
	dimNum    int
	tileOrder CellOrder
	domain    []Range[T]
	ext       []T
	attrs     map[string]attrInfo
}

func (s *fakeSchema[T]) DimNum() int            { return s.dimNum }
func (s *fakeSchema[T]) TileOrder() CellOrder   { return s.tileOrder }
func (s *fakeSchema[T]) Domain(d int) Range[T]  { return s.domain[d] }
func (s *fakeSchema[T]) TileExtent(d int) T     { return s.ext[d] }
func (s *fakeSchema[T]) TileNumInRange(rng []Range[T]) (uint64, bool) {
	return 0, false
}
func (s *fakeSchema[T]) IsAttr(name string) bool { _, ok := s.attrs[name]; return ok }
func (s *fakeSchema[T]) CellSize(name string) uint64 { return s.attrs[name].cellSize }
func (s *fakeSchema[T]) Type(name string) Datatype   { return s.attrs[name].typ }
func (s *fakeSchema[T]) VarSize(name string) bool    { return s.attrs[name].varSize }
func (s *fakeSchema[T]) FillValue(name string) []byte { return s.attrs[name].fill }

type fakeSubarray[T Integer] struct {
	layout CellOrder
	ranges []Range[T]
}

func (s *fakeSubarray[T]) Layout() CellOrder    { return s.layout }
func (s *fakeSubarray[T]) NDRange(d int) Range[T] { return s.ranges[d] }

type fakeBuffer struct {
	data []byte
}

func (b *fakeBuffer) Bytes() []byte { return b.data }

type fakeTile struct {
	buf       []byte
	cursor    uint64
	typ       Datatype
	cellSize  uint64
	formatVer uint32
	inited    bool
}

func (t *fakeTile) InitUnfiltered(formatVersion uint32, typ Datatype, totalSize, cellSize, initialOffset uint64) error {
	t.buf = make([]byte, totalSize)
	t.typ = typ
	t.cellSize = cellSize
	t.formatVer = formatVersion
	t.cursor = initialOffset
	t.inited = true
	return nil
}

func (t *fakeTile) Write(src []byte) error {
	n := copy(t.buf[t.cursor:], src)
	t.cursor += uint64(n)
	return nil
}

func (t *fakeTile) WriteAt(src []byte, offset uint64) error {
	copy(t.buf[offset:], src)
	return nil
}

func (t *fakeTile) ResetOffset() { t.cursor = 0 }
func (t *fakeTile) Size() uint64 { return uint64(len(t.buf)) }
func (t *fakeTile) Offset() uint64 { return t.cursor }

// le32 / le32Slice encode/decode little-endian int32 cells, matching how a
// real QueryBuffer/Tile would store T=int32 attribute values.

func le32(v int32) []byte {
	u := uint32(v)
	return []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
}

func le32Slice(vs ...int32) []byte {
	out := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		out = append(out, le32(v)...)
	}
	return out
}

func decodeLe32(buf []byte) []int32 {
	out := make([]int32, len(buf)/4)
	for i := range out {
		u := uint32(buf[i*4]) | uint32(buf[i*4+1])<<8 | uint32(buf[i*4+2])<<16 | uint32(buf[i*4+3])<<24
		out[i] = int32(u)
	}
	return out
}

const int32Min = int32(-2147483648)
