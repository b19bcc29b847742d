package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayMonthYear(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expectedOk bool
		y          int
		m          time.Month
		d          int
	}{
		{"slash", "01/03/2024", true, 2024, time.March, 1},
		{"dash", "01-03-2024", true, 2024, time.March, 1},
		{"dot", "01.03.2024", true, 2024, time.March, 1},
		{"single digits", "1/3/2024", true, 2024, time.March, 1},
		{"mixed separators", "15-03.2024", true, 2024, time.March, 15},
		{"surrounding spaces", "  15/03/2024 ", true, 2024, time.March, 15},
		{"time suffix", "15/03/2024 10:45:00", true, 2024, time.March, 15},
		{"two digit year", "15/03/24", true, 2024, time.March, 15},
		{"iso order", "2024-03-15", true, 2024, time.March, 15},
		{"leap day", "29/02/2024", true, 2024, time.February, 29},
		{"not a leap year", "29/02/2023", false, 0, 0, 0},
		{"day overflow", "31/04/2024", false, 0, 0, 0},
		{"month overflow", "01/13/2024", false, 0, 0, 0},
		{"zero day", "00/01/2024", false, 0, 0, 0},
		{"two parts", "03/2024", false, 0, 0, 0},
		{"letters", "ab/cd/efgh", false, 0, 0, 0},
		{"empty", "", false, 0, 0, 0},
		{"three digit year", "01/03/024", false, 0, 0, 0},
		{"one digit year", "01/03/4", false, 0, 0, 0},
		{"plus sign", "+1/03/2024", false, 0, 0, 0},
		{"minus sign in month", "01/-3/2024", false, 0, 0, 0},
		{"three digit day", "001/03/2024", false, 0, 0, 0},
		{"iso three digit month", "2024-003-15", false, 0, 0, 0},
		{"iso single digits", "2024-3-5", true, 2024, time.March, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, err := ParseDayMonthYear(tc.input)
			if !tc.expectedOk {
				assert.Error(t, err)
				assert.True(t, date.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.y, date.Year())
			assert.Equal(t, tc.m, date.Month())
			assert.Equal(t, tc.d, date.Day())
		})
	}
}

func TestParseDayMonthYear_SeparatorIndependent(t *testing.T) {
	for year := 2020; year <= 2025; year++ {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 9, 10, 28} {
				want, err := Date(year, month, day)
				require.NoError(t, err)

				for _, sep := range []string{"/", "-", "."} {
					text := want.Format("02") + sep + want.Format("01") + sep + want.Format("2006")
					got, err := ParseDayMonthYear(text)
					require.NoError(t, err, text)
					assert.True(t, want.Equal(got), "separator %q: %s", sep, text)
				}
			}
		}
	}
}
