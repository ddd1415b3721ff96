package analysis

import (
	"github.com/montanaflynn/stats"

	"coinlab/domain/coin"
)

// CumulativePoint is one step of the running heads/tails tally, the data
// behind the cumulative line chart.
type CumulativePoint struct {
	Flip  int `json:"flip"`
	Heads int `json:"heads"`
	Tails int `json:"tails"`
}

// CumulativeSeries computes the running tally for each flip in order
func CumulativeSeries(trials coin.TrialSequence) []CumulativePoint {
	series := make([]CumulativePoint, len(trials))
	heads, tails := 0, 0
	for i, outcome := range trials {
		if outcome == coin.Heads {
			heads++
		} else {
			tails++
		}
		series[i] = CumulativePoint{Flip: i + 1, Heads: heads, Tails: tails}
	}
	return series
}

// Frequency is the label/count/percentage triple behind the pie and bar
// charts.
type Frequency struct {
	Labels      []string  `json:"labels"`
	Counts      []int     `json:"counts"`
	Percentages []float64 `json:"percentages"`
}

// FrequencyData shapes a summary for the pie/bar chart views
func FrequencyData(summary coin.Summary) Frequency {
	return Frequency{
		Labels:      []string{coin.Heads.Label(), coin.Tails.Label()},
		Counts:      []int{summary.Heads, summary.Tails},
		Percentages: []float64{summary.HeadsPct, summary.TailsPct},
	}
}

// Profile captures distributional characteristics of one trial sequence
type Profile struct {
	ObservedProportion float64 `json:"observed_proportion"`
	StdDev             float64 `json:"std_dev"`
	LongestHeadsRun    int     `json:"longest_heads_run"`
	LongestTailsRun    int     `json:"longest_tails_run"`
	LeadChanges        int     `json:"lead_changes"`
}

// ProfileSequence computes the observed heads proportion, its sample
// standard deviation, the longest run of each outcome, and how often the
// running lead flipped between heads and tails.
func ProfileSequence(trials coin.TrialSequence) Profile {
	if len(trials) == 0 {
		return Profile{}
	}

	encoded := make([]float64, len(trials))
	for i, outcome := range trials {
		if outcome == coin.Heads {
			encoded[i] = 1
		}
	}

	mean, _ := stats.Mean(encoded)
	stdDev, _ := stats.StandardDeviation(encoded)

	profile := Profile{
		ObservedProportion: mean,
		StdDev:             stdDev,
	}

	run := 1
	lead := 0 // heads minus tails
	prevSign := 0
	for i, outcome := range trials {
		if outcome == coin.Heads {
			lead++
		} else {
			lead--
		}

		sign := 0
		if lead > 0 {
			sign = 1
		} else if lead < 0 {
			sign = -1
		}
		if sign != 0 && prevSign != 0 && sign != prevSign {
			profile.LeadChanges++
		}
		if sign != 0 {
			prevSign = sign
		}

		if i > 0 && trials[i] == trials[i-1] {
			run++
		} else {
			run = 1
		}
		if trials[i] == coin.Heads && run > profile.LongestHeadsRun {
			profile.LongestHeadsRun = run
		}
		if trials[i] == coin.Tails && run > profile.LongestTailsRun {
			profile.LongestTailsRun = run
		}
	}

	return profile
}
