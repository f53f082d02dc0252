package tiler

import "fmt"

// Kind classifies a tiler failure (spec §7). The kinds GetTile returns are
// non-fatal: it leaves the destination tile untouched (or, for
// TileInitFailure/TileWriteFailure, possibly initialized or partially
// written — the caller must discard it) and returns immediately.
// KindSchemaMismatch is never returned by GetTile; New panics with it.
type Kind int

const (
	// KindNone is the zero value; never appears on a returned *Error.
	KindNone Kind = iota
	// KindInvalidTileId: id >= TileNum().
	KindInvalidTileId
	// KindUnknownAttribute: attribute name not recognized by the schema.
	KindUnknownAttribute
	// KindVarSizedNotSupported: attribute is variable-sized.
	KindVarSizedNotSupported
	// KindTileInitFailure: the destination Tile's InitUnfiltered failed.
	KindTileInitFailure
	// KindTileWriteFailure: a Tile.Write/WriteAt call failed.
	KindTileWriteFailure
	// KindSchemaMismatch: a construction-time collaborator mismatch
	// (buffers reference an attribute the schema doesn't recognize).
	KindSchemaMismatch
)

func (k Kind) String() string {
	switch k {
	case KindInvalidTileId:
		return "invalid tile id"
	case KindUnknownAttribute:
		return "unknown attribute"
	case KindVarSizedNotSupported:
		return "variable-sized attribute not supported"
	case KindTileInitFailure:
		return "tile init failure"
	case KindTileWriteFailure:
		return "tile write failure"
	case KindSchemaMismatch:
		return "schema mismatch"
	default:
		return "unknown error"
	}
}

// Error is the error type returned across the tiler's boundary. It always
// carries a Kind and a human-readable context string (spec §7: "the tiler
// performs no logging beyond attaching a human-readable context string"),
// and wraps an underlying cause when one exists so callers can still use
// errors.Is/errors.As against it.
type Error struct {
	Kind    Kind
	Context string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tiler: %s: %s: %v", e.Kind, e.Context, e.Cause)
	}
	return fmt.Sprintf("tiler: %s: %s", e.Kind, e.Context)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, tiler.ErrInvalidTileId) style checks via the
// Kind-wrapping sentinels below, or a direct &Error{Kind: k} comparison.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func newError(kind Kind, context string, cause error) *Error {
	return &Error{Kind: kind, Context: context, Cause: cause}
}

func contextID(id uint64) string {
	return fmt.Sprintf("tile id %d", id)
}

func contextTile(id uint64, name string) string {
	return fmt.Sprintf("tile id %d, attribute %q", id, name)
}

// sentinel returns a comparable *Error for errors.Is(err, tiler.ErrInvalidTileId)
// style checks without requiring the caller to build one by hand.
func sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Sentinels for errors.Is comparisons, e.g. errors.Is(err, tiler.ErrInvalidTileId).
var (
	ErrInvalidTileId        = sentinel(KindInvalidTileId)
	ErrUnknownAttribute     = sentinel(KindUnknownAttribute)
	ErrVarSizedNotSupported = sentinel(KindVarSizedNotSupported)
	ErrTileInitFailure      = sentinel(KindTileInitFailure)
	ErrTileWriteFailure     = sentinel(KindTileWriteFailure)
	ErrSchemaMismatch       = sentinel(KindSchemaMismatch)
)
