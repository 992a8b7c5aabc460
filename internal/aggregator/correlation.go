package aggregator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when a correlation is undefined: fewer
// than two pairs, mismatched lengths, or a constant sequence.
var ErrInsufficientData = errors.New("insufficient data")

type Correlation struct {
	R float64 `json:"r"`
	P float64 `json:"p_value"`
	N int     `json:"n"`
}

// Pearson returns the Pearson correlation coefficient of x and y and its
// two-sided p-value under the t distribution with n-2 degrees of freedom.
func Pearson(x, y []float64) (Correlation, error) {
	n := len(x)
	if n != len(y) || n < 2 {
		return Correlation{N: n}, ErrInsufficientData
	}
	if constant(x) || constant(y) {
		return Correlation{N: n}, ErrInsufficientData
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return Correlation{N: n}, ErrInsufficientData
	}
	r = math.Max(-1, math.Min(1, r))

	c := Correlation{R: r, N: n}
	switch {
	case n == 2:
		c.P = 1
	case math.Abs(r) == 1:
		c.P = 0
	default:
		df := float64(n - 2)
		t := r * math.Sqrt(df/(1-r*r))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		c.P = math.Min(1, 2*dist.Survival(math.Abs(t)))
	}
	return c, nil
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
