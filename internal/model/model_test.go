package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatKey(t *testing.T) {
	assert.Equal(t, "1:1", SeatKey(1, 1))
	assert.Equal(t, "12:7", SeatKey(12, 7))
}

func TestSeatInBounds(t *testing.T) {
	s := Screening{Rows: 5, Seats: 10}

	assert.True(t, s.SeatInBounds(1, 1))
	assert.True(t, s.SeatInBounds(5, 10))
	assert.False(t, s.SeatInBounds(0, 1))
	assert.False(t, s.SeatInBounds(1, 0))
	assert.False(t, s.SeatInBounds(6, 1), "row just past the last row must not clamp")
	assert.False(t, s.SeatInBounds(1, 11))
}

func TestTakenSet(t *testing.T) {
	s := Screening{Taken: []string{"1:1", "2:2"}}
	set := s.TakenSet()

	assert.Len(t, set, 2)
	_, ok := set["1:1"]
	assert.True(t, ok)
	_, ok = set["9:9"]
	assert.False(t, ok)
}

func TestNormalizeDaytime(t *testing.T) {
	assert.Equal(t, "null", NormalizeDaytime(""))
	assert.Equal(t, "null", NormalizeDaytime("  "))
	assert.Equal(t, "2025-12-05", NormalizeDaytime(" 2025-12-05 "))
	assert.Equal(t, "2023-05-29T10:30:00.001Z", NormalizeDaytime("2023-05-29T10:30:00.001Z"))
}
