package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"float64", 1.5, 1.5},
		{"float32", float32(2.5), 2.5},
		{"int", 3, 3},
		{"int64", int64(4), 4},
		{"int32", int32(5), 5},
		{"uint", uint(6), 6},
		{"uint64", uint64(7), 7},
		{"string", "x", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFloat64(tt.input))
		})
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"int64", int64(4), 4},
		{"int", 3, 3},
		{"float64 truncates", 2.9, 2},
		{"uint32", uint32(8), 8},
		{"string", "x", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.input))
		})
	}
}
