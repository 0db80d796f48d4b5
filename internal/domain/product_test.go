package domain

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount *int64
		want     int64
	}{
		{"without discount", 10000, nil, 10000},
		{"with discount", 10000, int64Ptr(9000), 9000},
		{"zero discount falls back to price", 10000, int64Ptr(0), 10000},
		{"negative discount falls back to price", 10000, int64Ptr(-500), 10000},
		{"discount above price still wins", 10000, int64Ptr(12000), 12000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Name: "товар", Price: tt.price, DiscountPrice: tt.discount, Weight: "1 кг"}
			if got := p.EffectivePrice(); got != tt.want {
				t.Errorf("EffectivePrice() = %d, want %d", got, tt.want)
			}
		})
	}
}
