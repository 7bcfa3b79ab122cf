package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
)

func rng(t *testing.T, start, end string) daterange.Range {
	t.Helper()
	s, err := time.Parse(daterange.DayFormat, start)
	require.NoError(t, err)
	e, err := time.Parse(daterange.DayFormat, end)
	require.NoError(t, err)
	r, err := daterange.New(s, e)
	require.NoError(t, err)
	return r
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name        string
		pricePerDay float64
		start, end  string
		want        float64
	}{
		{"three inclusive days", 1000, "2024-03-01", "2024-03-03", 3000},
		{"single day still charged", 500, "2024-03-01", "2024-03-01", 500},
		{"ten days", 750, "2024-01-01", "2024-01-10", 7500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Total(tt.pricePerDay, rng(t, tt.start, tt.end)))
		})
	}
}

func TestQuote(t *testing.T) {
	spans := []Span{
		{Range: rng(t, "2024-03-01", "2024-03-03"), PricePerDay: 1000},
		{Range: rng(t, "2024-03-04", "2024-03-05"), PricePerDay: 800},
	}
	assert.Equal(t, 3000.0+1600.0, Quote(spans))

	assert.Zero(t, Quote(nil))
}
