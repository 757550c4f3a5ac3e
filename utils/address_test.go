package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCityFromAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{
			name:    "uk address with postcode",
			address: "221B Baker St, Marylebone, London NW1 6XE, UK",
			want:    "London",
		},
		{
			name:    "us address",
			address: "350 5th Ave, New York, NY 10118, USA",
			want:    "New York",
		},
		{
			name:    "city country only",
			address: "Kyoto, Japan",
			want:    "Kyoto",
		},
		{
			name:    "single segment",
			address: "Reykjavik",
			want:    "Reykjavik",
		},
		{
			name:    "empty",
			address: "",
			want:    "",
		},
		{
			name:    "only country and code",
			address: "NW1 6XE, UK",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CityFromAddress(tt.address))
		})
	}
}
