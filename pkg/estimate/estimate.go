// Package estimate computes straight-line distances between map points and
// turns them into walking time labels.
package estimate

import (
	"fmt"
	"math"

	"github.com/1F47E/campus-nav/pkg/models"
)

// DefaultUnitsPerMinute is the walking pace used when no calibration is
// configured, in map units (percent of image) per minute.
const DefaultUnitsPerMinute = 2.0

// LessThanMinute is the label used for any walk shorter than one minute
const LessThanMinute = "< 1 min"

// Distance returns the Euclidean distance between p1 and p2
func Distance(p1, p2 models.Point) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// Round2 rounds d to two decimal digits
func Round2(d float64) float64 {
	return math.Round(d*100) / 100
}

// FormatDistance renders d with exactly two decimals
func FormatDistance(d float64) string {
	return fmt.Sprintf("%.2f", Round2(d))
}

// Estimator converts distances to walking times at a fixed pace
type Estimator struct {
	UnitsPerMinute float64
}

// NewEstimator creates an estimator; a non-positive pace falls back to
// DefaultUnitsPerMinute.
func NewEstimator(unitsPerMinute float64) Estimator {
	if !(unitsPerMinute > 0) || math.IsInf(unitsPerMinute, 0) {
		unitsPerMinute = DefaultUnitsPerMinute
	}
	return Estimator{UnitsPerMinute: unitsPerMinute}
}

func (e Estimator) pace() float64 {
	if e.UnitsPerMinute > 0 {
		return e.UnitsPerMinute
	}
	return DefaultUnitsPerMinute
}

// Minutes returns ceil(distance / pace). Non-finite or non-positive
// distances count as zero minutes.
func (e Estimator) Minutes(distance float64) int {
	if !(distance > 0) || math.IsInf(distance, 0) {
		return 0
	}
	return int(math.Ceil(distance / e.pace()))
}

// WalkingTime formats the estimated walk for distance
func (e Estimator) WalkingTime(distance float64) string {
	minutes := e.Minutes(distance)
	if minutes < 1 {
		return LessThanMinute
	}
	return fmt.Sprintf("%d min", minutes)
}

// Estimate is the distance/time pair shown for a completed route
type Estimate struct {
	Distance    float64 `json:"distance"`
	Minutes     int     `json:"minutes"`
	WalkingTime string  `json:"walking_time"`
}

// DistanceLabel returns the distance rounded for display
func (e Estimate) DistanceLabel() string {
	return FormatDistance(e.Distance)
}

// Between builds the estimate for a walk from p1 to p2
func (e Estimator) Between(p1, p2 models.Point) Estimate {
	d := Distance(p1, p2)
	return Estimate{
		Distance:    d,
		Minutes:     e.Minutes(d),
		WalkingTime: e.WalkingTime(d),
	}
}

// WalkingTime formats distance using DefaultUnitsPerMinute
func WalkingTime(distance float64) string {
	return NewEstimator(DefaultUnitsPerMinute).WalkingTime(distance)
}
