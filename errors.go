package colidx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/colidx/column"
)

var (
	// ErrInconsistentLevels is returned when levels and codes disagree in
	// count or length at construction.
	ErrInconsistentLevels = errors.New("unequal number or length of levels and codes")

	// ErrTypeMismatch is returned when an append/concat operand is not a
	// MultiLevelIndex.
	ErrTypeMismatch = errors.New("operand is not a multi-level index")

	// ErrIndexerTooLong is returned when a tuple selector exceeds the number
	// of levels after trailing-wildcard trimming.
	ErrIndexerTooLong = errors.New("indexer size exceeds number of levels")

	// ErrNullSelector is returned when a take position selector contains nulls.
	ErrNullSelector = errors.New("position selector must have no nulls")

	// ErrLevelNotFound is returned when a level reference resolves to no level.
	ErrLevelNotFound = errors.New("level not found")

	// ErrUnsupportedOperation marks operations this structure deliberately does
	// not offer (boolean masking assignment and friends). Callers needing them
	// must delegate to an external collaborator.
	ErrUnsupportedOperation = errors.New("operation not supported on a multi-level index")
)

// ErrCodeOutOfRange indicates a code value outside [-1, levels_len-1].
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCodeOutOfRange struct {
	Level     int
	Code      int64
	LevelSize int
	cause     error
}

func (e *ErrCodeOutOfRange) Error() string {
	return fmt.Sprintf("code %d at level %d outside [-1, %d)", e.Code, e.Level, e.LevelSize)
}

func (e *ErrCodeOutOfRange) Unwrap() error { return e.cause }

// ErrKeyNotFound indicates a lookup key with zero matches.
type ErrKeyNotFound struct {
	Key []column.Value
}

func (e *ErrKeyNotFound) Error() string {
	parts := make([]string, len(e.Key))
	for i, v := range e.Key {
		parts[i] = v.Key()
	}
	return "key not found: (" + strings.Join(parts, ", ") + ")"
}

// IsNotFound reports whether err is a key-miss from a lookup.
func IsNotFound(err error) bool {
	var knf *ErrKeyNotFound
	return errors.As(err, &knf)
}
