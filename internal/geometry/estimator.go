// Package geometry estimates the solid volume of an uploaded STEP file.
//
// Two estimators exist: a deterministic hash-derived estimate that is a pure
// function of file content, and a FreeCAD-backed kernel that measures the
// real geometry and falls back to the hash estimate whenever it cannot.
// The contract either way: a non-empty file always yields the same positive
// volume for the same bytes.
package geometry

import (
	"context"
	"errors"
	"math"
)

// ErrEmptyFile is returned when there are no bytes to estimate from.
var ErrEmptyFile = errors.New("uploaded file is empty")

// Estimation sources.
const (
	SourceHash   = "hash"
	SourceKernel = "kernel"
)

const (
	// hashWindow bounds how much of the file feeds the rolling hash.
	hashWindow = 1024
	// baseFloor/baseRange place the unscaled volume in [25, 499] cm³.
	baseFloor = 25
	baseRange = 475
	// sizeUnit and maxSizeMultiplier bias larger files toward larger
	// volumes, capped at 3x.
	sizeUnit          = 50000.0
	maxSizeMultiplier = 3.0
)

// Estimation is the outcome of a volume extraction.
type Estimation struct {
	Volume float64 // cm³
	Source string
}

// Estimator produces a positive volume in cm³ from raw file bytes.
type Estimator interface {
	EstimateVolume(ctx context.Context, data []byte, fileSize int64) (Estimation, error)
}

// HashEstimator derives a repeatable pseudo-volume from file content alone.
// It never consults the clock, randomness, or the environment, so repeated
// uploads of the same artifact always price identically.
type HashEstimator struct{}

// EstimateVolume implements Estimator.
func (HashEstimator) EstimateVolume(_ context.Context, data []byte, fileSize int64) (Estimation, error) {
	if len(data) == 0 {
		return Estimation{}, ErrEmptyFile
	}
	return Estimation{Volume: hashVolume(data, fileSize), Source: SourceHash}, nil
}

// hashVolume folds the first hashWindow bytes through the classic *31 string
// hash on a wrapping 32-bit signed accumulator, mixes in the file size, and
// maps the result into a plausible volume range. The constants are kept
// bit-for-bit with previously issued quotes; do not retune them casually.
func hashVolume(data []byte, fileSize int64) float64 {
	window := data
	if len(window) > hashWindow {
		window = window[:hashWindow]
	}

	var h int32
	for _, c := range window {
		h = h*31 + int32(c)
	}
	h += int32(fileSize)

	p := int64(h)
	if p < 0 {
		p = -p
	}

	base := float64(baseFloor + p%baseRange)
	multiplier := float64(fileSize) / sizeUnit
	if multiplier > maxSizeMultiplier {
		multiplier = maxSizeMultiplier
	}

	return round2(base * (0.5 + multiplier*0.5))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
