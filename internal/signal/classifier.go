package signal

import "TrendSentinel/internal/model"

// Score weights and thresholds for the trend signal.
const (
	growthWeight   = 0.6
	momentumWeight = 0.4

	highInterestLevel = 70
	highInterestBonus = 5

	strongThreshold = 20
	mildThreshold   = 8
)

// Classify maps computed statistics to a qualitative trend signal and a
// confidence tier. Growth and momentum are combined as a weighted score;
// a nil term is omitted and its weight excluded from the denominator, so
// the score stays comparable whichever terms are available.
func Classify(stats model.SeriesStats, source model.SeriesSource) (string, string) {
	if !stats.HasData {
		return model.SignalInsufficient, model.ConfidenceLow
	}

	confidence := model.ConfidenceMedium
	if source == model.SourceLive {
		confidence = model.ConfidenceHigh
	}

	var sum, weight float64
	if stats.GrowthPct != nil {
		sum += growthWeight * *stats.GrowthPct
		weight += growthWeight
	}
	if stats.MomentumPct != nil {
		sum += momentumWeight * *stats.MomentumPct
		weight += momentumWeight
	}
	if weight == 0 {
		return model.SignalInsufficient, confidence
	}

	score := sum / weight
	if stats.LatestValue != nil && *stats.LatestValue >= highInterestLevel {
		score += highInterestBonus
	}

	switch {
	case score >= strongThreshold:
		return model.SignalStrongRise, confidence
	case score >= mildThreshold:
		return model.SignalMildRise, confidence
	case score <= -strongThreshold:
		return model.SignalStrongFall, confidence
	case score <= -mildThreshold:
		return model.SignalMildFall, confidence
	default:
		return model.SignalFlat, confidence
	}
}
