package stats

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{3, -8, 12, 0} {
		s.Push(v)
	}
	is.Equal(s.Min(), -8.0)
	is.Equal(s.Max(), 12.0)
	is.Equal(s.Last(), 0.0)
	is.Equal(s.Iterations(), 4)
}

func TestMerge(t *testing.T) {
	is := is.New(t)
	vals := []float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}
	all, a, b := &Statistic{}, &Statistic{}, &Statistic{}
	for i, v := range vals {
		all.Push(v)
		if i < 4 {
			a.Push(v)
		} else {
			b.Push(v)
		}
	}
	a.Merge(b)
	is.Equal(a.Iterations(), all.Iterations())
	is.True(FuzzyEqual(a.Mean(), all.Mean()))
	is.True(FuzzyEqual(a.Stdev(), all.Stdev()))
	is.Equal(a.Min(), 10.0)
	is.Equal(a.Max(), 124.0)

	empty := &Statistic{}
	empty.Merge(all)
	is.True(FuzzyEqual(empty.Mean(), all.Mean()))
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(ZVal(95)-1.959964) < 1e-5)
	is.True(math.Abs(ZVal(99)-2.575829) < 1e-5)
}

func TestTally(t *testing.T) {
	is := is.New(t)
	tl := &Tally{Wins: 6, Draws: 2, Losses: 2}
	is.Equal(tl.Games(), 10)
	is.True(FuzzyEqual(tl.Score(), 0.7))
	lo, hi := tl.ScoreInterval(95)
	is.True(lo < 0.7 && hi > 0.7)
	is.True(lo >= 0 && hi <= 1)

	all := &Tally{Wins: 5}
	lo, hi = all.ScoreInterval(95)
	is.Equal(lo, 1.0)
	is.Equal(hi, 1.0)

	is.Equal((&Tally{}).Score(), 0.0)
}
