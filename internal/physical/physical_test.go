package physical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedLenStatistics_Validate(t *testing.T) {
	tests := []struct {
		name    string
		stats   FixedLenStatistics
		wantErr bool
	}{
		{"empty bounds", FixedLenStatistics{ByteWidth: 4}, false},
		{"matching bounds", FixedLenStatistics{ByteWidth: 2, MinValue: []byte{0, 1}, MaxValue: []byte{0, 2}}, false},
		{"zero width", FixedLenStatistics{ByteWidth: 0}, true},
		{"negative width", FixedLenStatistics{ByteWidth: -1}, true},
		{"short min", FixedLenStatistics{ByteWidth: 4, MinValue: []byte{1}}, true},
		{"long max", FixedLenStatistics{ByteWidth: 1, MaxValue: []byte{1, 2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInt64(t *testing.T) {
	a, b := Int64(7), Int64(7)
	assert.Equal(t, int64(7), *a)
	assert.NotSame(t, a, b)
}
