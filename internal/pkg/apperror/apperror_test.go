package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesKindAndIdentity(t *testing.T) {
	errDuplicate := New(KindConflict, "duplicate")
	errOther := New(KindConflict, "other")

	wrapped := fmt.Errorf("create row: %w", errDuplicate)

	assert.True(t, errors.Is(wrapped, errDuplicate))
	assert.True(t, errors.Is(wrapped, ErrConflict))
	assert.False(t, errors.Is(wrapped, errOther))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("outer: %w", New(KindInvalidState, "bad")))
	assert.True(t, ok)
	assert.Equal(t, KindInvalidState, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestKindSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrConflict))
	assert.True(t, errors.Is(ErrForbidden, ErrForbidden))
}
