package signal

import (
	"testing"

	"TrendSentinel/internal/model"
)

func f(v float64) *float64 { return &v }

func TestClassify_NoData(t *testing.T) {
	sig, conf := Classify(model.SeriesStats{HasData: false}, model.SourceLive)
	if sig != model.SignalInsufficient {
		t.Errorf("signal = %q, want %q", sig, model.SignalInsufficient)
	}
	if conf != model.ConfidenceLow {
		t.Errorf("confidence = %q, want %q", conf, model.ConfidenceLow)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		name     string
		growth   *float64
		momentum *float64
		latest   *float64
		want     string
	}{
		{"strong rise", f(30), f(30), f(50), model.SignalStrongRise},
		{"mild rise", f(10), f(10), f(50), model.SignalMildRise},
		{"flat", f(2), f(-2), f(50), model.SignalFlat},
		{"mild fall", f(-10), f(-10), f(50), model.SignalMildFall},
		{"strong fall", f(-30), f(-30), f(50), model.SignalStrongFall},
		{"boundary strong", f(20), f(20), f(50), model.SignalStrongRise},
		{"boundary mild", f(8), f(8), f(50), model.SignalMildRise},
	}
	for _, c := range cases {
		stats := model.SeriesStats{
			HasData:     true,
			GrowthPct:   c.growth,
			MomentumPct: c.momentum,
			LatestValue: c.latest,
		}
		sig, _ := Classify(stats, model.SourceLive)
		if sig != c.want {
			t.Errorf("%s: signal = %q, want %q", c.name, sig, c.want)
		}
	}
}

func TestClassify_WeightedScore(t *testing.T) {
	// 0.6*30 + 0.4*(-15) = 12, /1.0 = 12 → mild rise
	stats := model.SeriesStats{
		HasData:     true,
		GrowthPct:   f(30),
		MomentumPct: f(-15),
		LatestValue: f(50),
	}
	sig, _ := Classify(stats, model.SourceLive)
	if sig != model.SignalMildRise {
		t.Errorf("signal = %q, want %q", sig, model.SignalMildRise)
	}
}

func TestClassify_NilTermExcluded(t *testing.T) {
	// Only momentum available: score = 0.4*25 / 0.4 = 25 → strong rise.
	stats := model.SeriesStats{
		HasData:     true,
		MomentumPct: f(25),
		LatestValue: f(50),
	}
	sig, _ := Classify(stats, model.SourceSynthetic)
	if sig != model.SignalStrongRise {
		t.Errorf("signal = %q, want %q", sig, model.SignalStrongRise)
	}
}

func TestClassify_BothTermsNil(t *testing.T) {
	stats := model.SeriesStats{HasData: true, LatestValue: f(90)}
	sig, conf := Classify(stats, model.SourceSynthetic)
	if sig != model.SignalInsufficient {
		t.Errorf("signal = %q, want %q", sig, model.SignalInsufficient)
	}
	if conf != model.ConfidenceMedium {
		t.Errorf("confidence = %q, want %q", conf, model.ConfidenceMedium)
	}
}

func TestClassify_HighInterestBonus(t *testing.T) {
	// Score 16 alone is mild rise; +5 bonus pushes it to strong rise.
	stats := model.SeriesStats{
		HasData:     true,
		GrowthPct:   f(16),
		MomentumPct: f(16),
		LatestValue: f(75),
	}
	sig, _ := Classify(stats, model.SourceLive)
	if sig != model.SignalStrongRise {
		t.Errorf("signal = %q, want %q (bonus applied)", sig, model.SignalStrongRise)
	}

	stats.LatestValue = f(50)
	sig, _ = Classify(stats, model.SourceLive)
	if sig != model.SignalMildRise {
		t.Errorf("signal = %q, want %q (no bonus)", sig, model.SignalMildRise)
	}
}

func TestClassify_Confidence(t *testing.T) {
	stats := model.SeriesStats{HasData: true, GrowthPct: f(0), MomentumPct: f(0), LatestValue: f(50)}
	if _, conf := Classify(stats, model.SourceLive); conf != model.ConfidenceHigh {
		t.Errorf("live confidence = %q, want %q", conf, model.ConfidenceHigh)
	}
	if _, conf := Classify(stats, model.SourceSynthetic); conf != model.ConfidenceMedium {
		t.Errorf("synthetic confidence = %q, want %q", conf, model.ConfidenceMedium)
	}
}
