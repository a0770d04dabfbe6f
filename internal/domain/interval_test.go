package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSB-BookingService/pkg/types"
)

func TestNewTimeInterval(t *testing.T) {
	iv, err := NewTimeInterval(600, 690)
	require.NoError(t, err)
	assert.Equal(t, 90, iv.DurationMinutes())

	_, err = NewTimeInterval(600, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(690, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	mk := func(start, end int) TimeInterval {
		iv, err := NewTimeInterval(start, end)
		require.NoError(t, err)
		return iv
	}

	tests := []struct {
		name string
		a, b TimeInterval
		want bool
	}{
		{name: "partial overlap", a: mk(600, 690), b: mk(660, 720), want: true},
		{name: "containment", a: mk(600, 720), b: mk(630, 660), want: true},
		{name: "identical", a: mk(600, 690), b: mk(600, 690), want: true},
		{name: "touching boundaries do not overlap", a: mk(600, 660), b: mk(660, 720), want: false},
		{name: "disjoint", a: mk(600, 660), b: mk(720, 780), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeInterval_OverlapsWithBuffer(t *testing.T) {
	a, _ := NewTimeInterval(600, 660) // 10:00-11:00
	b, _ := NewTimeInterval(660, 720) // 11:00-12:00

	// Нулевой буфер эквивалентен строгому правилу
	assert.False(t, a.OverlapsWithBuffer(b, 0))

	// Требование 15-минутного зазора делает встык-интервалы конфликтом
	assert.True(t, a.OverlapsWithBuffer(b, 15))

	c, _ := NewTimeInterval(675, 720) // 11:15-12:00, ровно через зазор
	assert.False(t, a.OverlapsWithBuffer(c, 15))
}

func TestNewTimeIntervalFromStrings(t *testing.T) {
	iv, err := NewTimeIntervalFromStrings(types.TimeString("10:00"), types.TimeString("11:30"))
	require.NoError(t, err)
	assert.Equal(t, 600, iv.Start)
	assert.Equal(t, 690, iv.End)
	assert.Equal(t, "10:00-11:30", iv.String())

	_, err = NewTimeIntervalFromStrings(types.TimeString("11:30"), types.TimeString("10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeIntervalFromStrings(types.TimeString("abc"), types.TimeString("10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTimeInterval_EndTimeMidnight(t *testing.T) {
	iv, err := NewTimeInterval(23*60, 24*60)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("24:00"), iv.EndTime())
	assert.Equal(t, "23:00-24:00", iv.String())
}
