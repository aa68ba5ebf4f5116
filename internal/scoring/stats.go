package scoring

import "math"

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range xs {
		s += v
	}
	return s / float64(len(xs))
}

// variance is the population variance, matching the dispersion measure
// used for confidence estimation.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	s := 0.0
	for _, v := range xs {
		d := v - m
		s += d * d
	}
	return s / float64(len(xs))
}

// olsSlope fits an ordinary least-squares line over ys sampled at
// x = 0, 1, ..., n-1 and returns its slope.
func olsSlope(ys []float64) float64 {
	n := len(ys)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := mean(ys)
	num, den := 0.0, 0.0
	for i, y := range ys {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func mapValues(m map[string]float64) []float64 {
	vs := make([]float64, 0, len(m))
	for _, v := range m {
		vs = append(vs, v)
	}
	return vs
}
