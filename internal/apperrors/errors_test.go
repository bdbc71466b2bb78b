package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesSentinelByKind(t *testing.T) {
	err := NewNotFoundError("Goal")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Goal not found or access denied", err.Error())
}

func TestAppError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("loading goal: %w", NewConflictError("PlannedEvent", "Event concurrently updated; try again"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestAppError_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDataIntegrityError("CurrencyRateHistory", "no historical rate for USD->EUR on 2025-01-02", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", NewFieldValidationError("Goal", "name", "Goal name is required"), KindValidation},
		{"plain sentinel", fmt.Errorf("%w: bad input", ErrValidation), KindValidation},
		{"duplicate sentinel", ErrDuplicate, KindConflict},
		{"upstream", NewUpstreamError("fxratesapi", "request failed", nil), KindUpstream},
		{"unknown", errors.New("boom"), KindInternal},
		{"nil", nil, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestNewAppError_MapsStatus(t *testing.T) {
	assert.Equal(t, KindInternal, NewAppError(http.StatusInternalServerError, "failed", nil).Kind)
	assert.Equal(t, KindNotFound, NewAppError(http.StatusNotFound, "missing", nil).Kind)
	assert.Equal(t, http.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindDataIntegrity.HTTPStatus())
}
