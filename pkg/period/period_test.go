package period

import (
	"testing"
	"time"

	"github.com/kasabook/kasabook/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Monthly(t *testing.T) {
	r, err := Resolve(Monthly, "2024-02")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.EndExclusive)
	assert.Equal(t, []string{"2024-02"}, r.Months)
}

func TestResolve_Annual(t *testing.T) {
	r, err := Resolve(Annual, "2024")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), r.EndExclusive)
	require.Len(t, r.Months, 12)
	assert.Equal(t, "2024-01", r.Months[0])
	assert.Equal(t, "2024-12", r.Months[11])
}

func TestResolve_Custom(t *testing.T) {
	r, err := Resolve(Custom, "2024-01-15_2024-03-10")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), r.Start)
	// upper bound is the day after the end date, keeping the interval half-open
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), r.EndExclusive)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, r.Months)
}

func TestResolve_CustomSingleDay(t *testing.T) {
	r, err := Resolve(Custom, "2024-06-05_2024-06-05")

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06"}, r.Months)
	assert.True(t, r.Contains(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)))
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name       string
		periodType Type
		period     string
	}{
		{"malformed monthly", Monthly, "2024/02"},
		{"malformed annual", Annual, "24"},
		{"custom missing delimiter", Custom, "2024-01-15"},
		{"custom bad start", Custom, "2024-13-40_2024-03-10"},
		{"custom end before start", Custom, "2024-03-10_2024-01-15"},
		{"unknown type", Type("weekly"), "2024-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.periodType, tt.period)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestResolve_HalfOpenCoverage(t *testing.T) {
	// every date strictly inside the window belongs to exactly one listed
	// month, and the bounds behave identically across period types
	for _, tc := range []struct {
		periodType Type
		period     string
	}{
		{Monthly, "2024-02"},
		{Annual, "2024"},
		{Custom, "2024-01-15_2024-03-10"},
	} {
		r, err := Resolve(tc.periodType, tc.period)
		require.NoError(t, err)

		monthSet := map[string]bool{}
		for _, m := range r.Months {
			monthSet[m] = true
		}

		for d := r.Start; d.Before(r.EndExclusive); d = d.AddDate(0, 0, 1) {
			assert.True(t, r.Contains(d), "%s should be inside %s %s", d, tc.periodType, tc.period)
			assert.True(t, monthSet[d.Format("2006-01")],
				"month of %s missing from %v", d, r.Months)
		}
		assert.False(t, r.Contains(r.EndExclusive))
		assert.False(t, r.Contains(r.Start.AddDate(0, 0, -1)))
	}
}

func TestCurrent(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 2, 14, 15, 30, 0, 0, time.UTC)}

	assert.Equal(t, "2024-02", Current(Monthly, clock))
	assert.Equal(t, "2024", Current(Annual, clock))
	assert.Equal(t, "2024-02-01_2024-02-29", Current(Custom, clock))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "February 2024", Label(Monthly, "2024-02"))
	assert.Equal(t, "2024", Label(Annual, "2024"))
	assert.Equal(t, "2024-01-15 to 2024-03-10", Label(Custom, "2024-01-15_2024-03-10"))
	assert.Equal(t, "garbage", Label(Monthly, "garbage"))
}
