package engagement

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"terlab/domain/stats"
)

// rankTolerance is the relative singular value cutoff below which the design
// matrix counts as rank deficient
const rankTolerance = 1e-10

// regress fits rate = b0 + sum(b_j * x_j) by ordinary least squares over the
// six triggers and five frames. The fit is solved through an SVD of the
// design matrix; a rank-deficient design (collinear or constant predictors,
// fewer observations than parameters) is reported as ErrFitFailed instead of
// silently returning a minimum-norm solution.
func regress(s *sample) (stats.RegressionResult, error) {
	vars := s.variables()
	n := s.size()
	p := len(vars) + 1

	if n < p {
		return stats.RegressionResult{}, fmt.Errorf("%w: %d observations for %d parameters", ErrFitFailed, n, p)
	}

	design := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j, v := range vars {
			design.Set(i, j+1, v.Values[i])
		}
	}
	y := mat.NewVecDense(n, append([]float64(nil), s.rates...))

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return stats.RegressionResult{}, fmt.Errorf("%w: svd did not converge", ErrFitFailed)
	}
	if rank := svd.Rank(rankTolerance); rank < p {
		return stats.RegressionResult{}, fmt.Errorf("%w: design rank %d < %d", ErrFitFailed, rank, p)
	}

	var beta mat.VecDense
	svd.SolveVecTo(&beta, y, p)

	for i := 0; i < p; i++ {
		if v := beta.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return stats.RegressionResult{}, fmt.Errorf("%w: non-finite coefficient", ErrFitFailed)
		}
	}

	var fitted mat.VecDense
	fitted.MulVec(design, &beta)

	mean := 0.0
	for _, r := range s.rates {
		mean += r
	}
	mean /= float64(n)

	var ssRes, ssTot float64
	for i, r := range s.rates {
		d := r - fitted.AtVec(i)
		ssRes += d * d
		t := r - mean
		ssTot += t * t
	}
	r2 := math.NaN()
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	coefs := make([]stats.Coefficient, len(vars))
	for j, v := range vars {
		c := beta.AtVec(j + 1)
		coefs[j] = stats.Coefficient{
			Predictor:      v.Key,
			Kind:           v.Kind,
			Coefficient:    stats.Number(c),
			AbsCoefficient: stats.Number(math.Abs(c)),
		}
	}
	sort.SliceStable(coefs, func(a, b int) bool {
		return coefs[a].AbsCoefficient > coefs[b].AbsCoefficient
	})

	return stats.RegressionResult{
		Intercept:    stats.Number(beta.AtVec(0)),
		RSquared:     stats.Number(r2),
		Observations: n,
		Coefficients: coefs,
	}, nil
}
