package ledger

import "errors"

var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrNotFound              = errors.New("not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrStockConflict         = errors.New("stock changed concurrently")
	ErrInternalInconsistency = errors.New("internal inconsistency")
	ErrConflict              = errors.New("already exists")
	ErrInvalidInput          = errors.New("invalid input")
)

// Code returns the wire code for err, or "internal" for anything unexpected.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrStockConflict):
		return "stock_conflict"
	case errors.Is(err, ErrInternalInconsistency):
		return "internal_inconsistency"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
