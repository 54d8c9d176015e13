package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int", 7, 7},
		{"int32", int32(-3), -3},
		{"uint8", uint8(9), 9},
		{"float", 4.0, 4},
		{"string", " 42 ", 42},
		{"bytes", []byte("15"), 15},
		{"bool", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt64(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ToInt64(struct{}{})
	assert.Error(t, err)
	_, err = ToInt64("abc")
	assert.Error(t, err)
}

func TestToUint64(t *testing.T) {
	got, err := ToUint64(int64(12))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), got)

	got, err = ToUint64([]byte("18446744073709551615"))
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), got)

	_, err = ToUint64(int64(-1))
	assert.Error(t, err)
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"bool", true, true},
		{"one", int64(1), true},
		{"zero", int64(0), false},
		{"text true", "TRUE", true},
		{"text zero", "0", false},
		{"bit", []byte{1}, true},
		{"bit zero", []byte{0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBool(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ToBool("maybe")
	assert.Error(t, err)
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	got, err := ToTime([]byte("2024-03-01 10:30:00"))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = ToTime("2024-03-01T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = ToTime(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ToTime("yesterday")
	assert.Error(t, err)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "12", ToString(12))
}
