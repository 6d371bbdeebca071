package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule(8, 4, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, s.NumWindows)
	assert.Equal(t, []int{0, 2, 4}, s.Loci())
}

func TestNewSchedule_NumWindows(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		winLen int
		stride int
		want   int
	}{
		{"exact multiple", 10, 4, 2, 4},
		{"with remainder", 11, 4, 2, 4},
		{"window equals input", 4, 4, 2, 1},
		{"stride one", 10, 3, 1, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchedule(tt.n, tt.winLen, tt.stride)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.NumWindows)
		})
	}
}

func TestNewSchedule_Invalid(t *testing.T) {
	// stride == winLen is rejected, stride must be strictly smaller.
	_, err := NewSchedule(10, 4, 4)
	assert.ErrorIs(t, err, ErrStride)

	_, err = NewSchedule(10, 4, 5)
	assert.ErrorIs(t, err, ErrStride)

	_, err = NewSchedule(10, 4, 0)
	assert.ErrorIs(t, err, ErrStride)

	_, err = NewSchedule(10, 12, 2)
	assert.ErrorIs(t, err, ErrWindowLength)

	_, err = NewSchedule(10, 0, 2)
	assert.ErrorIs(t, err, ErrWindowLength)
}
