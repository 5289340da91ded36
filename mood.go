package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	MinMood  = -4
	MaxMood  = 4
	MaxSleep = 24.0
)

var ErrMoodOutOfRange = errors.New("mood out of range")

// Gradient is indexed by mood+4, from deep red (-4) to deep green (+4).
var Gradient = [MaxMood - MinMood + 1]string{
	"#8B0000", // -4
	"#B22222", // -3
	"#CD5C5C", // -2
	"#F08080", // -1
	"#D3D3D3", //  0
	"#90EE90", // +1
	"#32CD32", // +2
	"#228B22", // +3
	"#006400", // +4
}

func ColorIndex(mood int) (int, error) {
	idx := mood - MinMood
	if idx < 0 || idx >= len(Gradient) {
		return 0, fmt.Errorf("%w: %d", ErrMoodOutOfRange, mood)
	}
	return idx, nil
}

func MoodColor(mood int) (string, error) {
	idx, err := ColorIndex(mood)
	if err != nil {
		return "", err
	}
	return Gradient[idx], nil
}

// moodRGBA converts a gradient entry for drawing.
func moodRGBA(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func ClampMood(m int) int {
	return min(max(m, MinMood), MaxMood)
}

func ClampSleep(h float64) float64 {
	if math.IsNaN(h) {
		return 0
	}
	return min(max(h, 0), MaxSleep)
}

func FormatMood(m int) string {
	if m > 0 {
		return "+" + strconv.Itoa(m)
	}
	return strconv.Itoa(m)
}

// MoodLevel pairs a mood value with its gradient color for templates.
type MoodLevel struct {
	Value int
	Label string
	Color string
}

func MoodLevels() []MoodLevel {
	levels := make([]MoodLevel, 0, len(Gradient))
	for m := MinMood; m <= MaxMood; m++ {
		levels = append(levels, MoodLevel{Value: m, Label: FormatMood(m), Color: Gradient[m-MinMood]})
	}
	return levels
}
