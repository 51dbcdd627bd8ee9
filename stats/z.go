package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// MeanInterval returns the confidence interval around the mean of s.
func MeanInterval(s *Statistic, confidenceInterval float64) (lo, hi float64) {
	half := ZVal(confidenceInterval) * s.StandardError()
	return s.Mean() - half, s.Mean() + half
}

// Tally counts game results from one player's point of view. A draw is
// worth half a win.
type Tally struct {
	Wins   int `yaml:"wins"`
	Draws  int `yaml:"draws"`
	Losses int `yaml:"losses"`
}

func (t *Tally) Games() int {
	return t.Wins + t.Draws + t.Losses
}

// Score returns the fraction of points won.
func (t *Tally) Score() float64 {
	if t.Games() == 0 {
		return 0
	}
	return (float64(t.Wins) + 0.5*float64(t.Draws)) / float64(t.Games())
}

// ScoreInterval is the normal-approximation confidence interval of Score,
// clamped to [0, 1].
func (t *Tally) ScoreInterval(confidenceInterval float64) (lo, hi float64) {
	s := &Statistic{}
	for i := 0; i < t.Wins; i++ {
		s.Push(1)
	}
	for i := 0; i < t.Draws; i++ {
		s.Push(0.5)
	}
	for i := 0; i < t.Losses; i++ {
		s.Push(0)
	}
	lo, hi = MeanInterval(s, confidenceInterval)
	return max(lo, 0), min(hi, 1)
}
