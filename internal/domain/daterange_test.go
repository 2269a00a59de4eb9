package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	s, err := ParseDate(start)
	require.NoError(t, err)
	e, err := ParseDate(end)
	require.NoError(t, err)
	return DateRange{StartDate: s, EndDate: e}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-11")
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-11", d.String())

	for _, bad := range []string{"", "11-06-2024", "2024/06/11", "2024-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	t.Run("Symmetric", func(t *testing.T) {
		a := mustRange(t, "2024-01-01", "2024-01-05")
		b := mustRange(t, "2024-01-03", "2024-01-10")
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("Self overlap", func(t *testing.T) {
		a := mustRange(t, "2024-01-01", "2024-01-05")
		assert.True(t, a.Overlaps(a))
	})

	t.Run("Shared boundary day conflicts", func(t *testing.T) {
		a := mustRange(t, "2024-01-01", "2024-01-05")
		b := mustRange(t, "2024-01-05", "2024-01-10")
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("Adjacent ranges do not overlap", func(t *testing.T) {
		a := mustRange(t, "2024-01-01", "2024-01-04")
		b := mustRange(t, "2024-01-05", "2024-01-10")
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("Containment", func(t *testing.T) {
		outer := mustRange(t, "2024-01-01", "2024-01-31")
		inner := mustRange(t, "2024-01-10", "2024-01-12")
		assert.True(t, outer.Overlaps(inner))
		assert.True(t, inner.Overlaps(outer))
	})
}

func TestDateRange_Days(t *testing.T) {
	// Inclusive convention: both endpoints count.
	assert.Equal(t, 1, mustRange(t, "2024-06-11", "2024-06-11").Days())
	assert.Equal(t, 5, mustRange(t, "2024-06-11", "2024-06-15").Days())
	assert.Equal(t, 31, mustRange(t, "2024-01-01", "2024-01-31").Days())
	// Crosses a month boundary
	assert.Equal(t, 4, mustRange(t, "2024-02-28", "2024-03-02").Days())
}

func TestDateRange_Validate(t *testing.T) {
	assert.NoError(t, mustRange(t, "2024-01-01", "2024-01-05").Validate())
	assert.NoError(t, mustRange(t, "2024-01-01", "2024-01-01").Validate())

	inverted := mustRange(t, "2024-01-05", "2024-01-01")
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidRange)

	assert.Error(t, DateRange{}.Validate())
}

func TestDateRange_JSON(t *testing.T) {
	r := mustRange(t, "2024-06-11", "2024-06-15")
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startDate":"2024-06-11","endDate":"2024-06-15"}`, string(data))

	var decoded DateRange
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, r.StartDate.Equal(decoded.StartDate))
	assert.True(t, r.EndDate.Equal(decoded.EndDate))

	var bad DateRange
	err = json.Unmarshal([]byte(`{"startDate":"11.06.2024","endDate":"2024-06-15"}`), &bad)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
