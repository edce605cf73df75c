// Package surf scores surf conditions against a spot configuration.
// Everything here is pure and total over finite input.
package surf

import (
	"math"
	"strings"

	"github.com/surfhub/swellcast/backend-go/internal/models"
)

const (
	WeightWaveHeight     = 0.30
	WeightWavePeriod     = 0.25
	WeightWind           = 0.35
	WeightSwellDirection = 0.10

	MinScore = 1
	MaxScore = 10
)

// ScoreWaveHeight rewards heights inside the optimal band and decays
// outside it.
func ScoreWaveHeight(height float64, optimal models.Range) float64 {
	lo, hi := optimal.Min, optimal.Max
	switch {
	case height < lo*0.5:
		return 0.1
	case height < lo:
		return (height / lo) * 0.6
	case height <= hi:
		return 1.0
	case height <= hi*1.5:
		return math.Max(0.4, 1-((height-hi)/hi)*0.6)
	default:
		return 0.2
	}
}

// ScoreWavePeriod is a step function: longer period means more energy.
func ScoreWavePeriod(period float64) float64 {
	switch {
	case period < 6:
		return 0.1
	case period < 8:
		return 0.3
	case period < 10:
		return 0.5
	case period < 12:
		return 0.7
	case period < 16:
		return 0.9
	default:
		return 1.0
	}
}

// ScoreWind grades wind by how close it blows to offshore and how hard.
// swellDirection is accepted for signature stability and does not affect
// the result.
func ScoreWind(windSpeed, windDirection, swellDirection, shoreAspect float64) float64 {
	offshore := normalize(shoreAspect + 180)
	diff := angularDistance(windDirection, offshore)

	switch {
	case diff <= 45:
		switch {
		case windSpeed <= 2:
			return 1.0
		case windSpeed <= 5:
			return 0.9
		case windSpeed <= 8:
			return 0.7
		default:
			return 0.4
		}
	case diff <= 135:
		switch {
		case windSpeed <= 3:
			return 0.7
		case windSpeed <= 6:
			return 0.5
		default:
			return 0.3
		}
	default:
		switch {
		case windSpeed <= 2:
			return 0.6
		case windSpeed <= 5:
			return 0.4
		default:
			return 0.2
		}
	}
}

// ScoreSwellDirection returns 1.0 inside the optimal window (which may wrap
// through north) and decays with the distance to the nearest edge.
func ScoreSwellDirection(swellDirection float64, optimal models.Range) float64 {
	d := normalize(swellDirection)
	lo, hi := normalize(optimal.Min), normalize(optimal.Max)
	// A full-circle window such as [0, 360] collapses to [0, 0] after
	// normalizing; keep the caller's intent.
	if optimal.Max-optimal.Min >= 360 {
		return 1.0
	}

	if InDirectionRange(d, lo, hi) {
		return 1.0
	}

	distance := math.Min(angularDistance(d, lo), angularDistance(d, hi))
	switch {
	case distance <= 30:
		return 0.8
	case distance <= 60:
		return 0.5
	case distance <= 90:
		return 0.3
	default:
		return 0.1
	}
}

// InDirectionRange reports whether d lies in [lo, hi], treating lo > hi
// as a window that wraps through north. All inputs are in [0, 360).
func InDirectionRange(d, lo, hi float64) bool {
	if lo <= hi {
		return d >= lo && d <= hi
	}
	return d >= lo || d <= hi
}

// CalculateOverallScore scores conditions against a spot.
func CalculateOverallScore(conditions models.SurfConditions, spot models.SpotConfiguration) models.SurfQuality {
	breakdown := models.ScoreBreakdown{
		WaveHeight:     ScoreWaveHeight(conditions.WaveHeight, spot.OptimalWaveHeight),
		WavePeriod:     ScoreWavePeriod(conditions.WavePeriod),
		Wind:           ScoreWind(conditions.WindSpeed, conditions.WindDirection, conditions.SwellDirection, spot.Aspect),
		SwellDirection: ScoreSwellDirection(conditions.SwellDirection, spot.OptimalSwellDirection),
	}

	score := OverallScore(breakdown)
	rating, description := Rate(score, breakdown)

	return models.SurfQuality{
		OverallScore: score,
		Rating:       rating,
		Breakdown:    breakdown,
		Description:  description,
	}
}

// OverallScore combines sub-scores into an integer in [MinScore, MaxScore].
func OverallScore(b models.ScoreBreakdown) int {
	weighted := b.WaveHeight*WeightWaveHeight +
		b.WavePeriod*WeightWavePeriod +
		b.Wind*WeightWind +
		b.SwellDirection*WeightSwellDirection

	score := int(math.Round(weighted * 10))
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

type ratingBand struct {
	min         int
	rating      string
	description string
}

var ratingLadder = []ratingBand{
	{9, "Epic", "World-class conditions! Everything is firing."},
	{8, "Excellent", "Outstanding surf with great waves and conditions."},
	{7, "Very Good", "Really good surf worth making the effort for."},
	{6, "Good", "Solid surf with fun waves."},
	{5, "Fair", "Decent waves, some fun to be had."},
	{4, "Poor-Fair", "Marginal conditions, better than nothing."},
	{3, "Poor", "Poor conditions, not really worth it."},
	{2, "Very Poor", "Very poor surf, maybe for beginners only."},
	{math.MinInt, "Flat/Blown Out", "No surf or completely blown out conditions."},
}

// Rate maps a score to its label and a description annotated with the
// sub-scores that stand out.
func Rate(score int, b models.ScoreBreakdown) (string, string) {
	band := ratingLadder[len(ratingLadder)-1]
	for _, r := range ratingLadder {
		if score >= r.min {
			band = r
			break
		}
	}

	var details []string
	if b.Wind < 0.5 {
		details = append(details, "wind is problematic")
	}
	if b.WaveHeight < 0.4 {
		details = append(details, "waves are too small")
	}
	if b.WaveHeight > 0.9 && b.Wind > 0.7 {
		details = append(details, "great size and clean conditions")
	}
	if b.WavePeriod > 0.8 {
		details = append(details, "excellent wave energy")
	}

	if len(details) == 0 {
		return band.rating, band.description
	}
	return band.rating, band.description + " " + strings.Join(details, ", ") + "."
}

// CoarseRating is the four-step ladder used when no per-spot breakdown is
// available.
func CoarseRating(score int) string {
	switch {
	case score >= 8:
		return "Excellent"
	case score >= 6:
		return "Good"
	case score >= 4:
		return "Fair"
	default:
		return "Poor"
	}
}

func normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// angularDistance is the shorter way round the circle between two bearings.
func angularDistance(a, b float64) float64 {
	diff := math.Abs(normalize(a) - normalize(b))
	return math.Min(diff, 360-diff)
}
