package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderQuantity(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		sales   int
		transit int
		want    int
	}{
		{"demand exceeds coverage", 5, 10, 3, 12},
		{"fully covered", 25, 10, 0, 0},
		{"clamped to zero", 10, 2, 5, 0},
		{"no sales", 0, 0, 0, 0},
		{"transit counts as coverage", 0, 10, 20, 0},
		{"exact boundary", 10, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderQuantity(tt.stock, tt.sales, tt.transit))
		})
	}
}

func TestOrderQuantityNeverNegative(t *testing.T) {
	for stock := 0; stock <= 30; stock += 5 {
		for sales := 0; sales <= 10; sales += 2 {
			for transit := 0; transit <= 20; transit += 4 {
				assert.GreaterOrEqual(t, OrderQuantity(stock, sales, transit), 0)
			}
		}
	}
}
