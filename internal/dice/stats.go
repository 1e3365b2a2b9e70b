package dice

import (
	"errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// Roller is anything that produces faces.
type Roller interface {
	Roll() Face
}

// Tally throws r n times and counts each face.
func Tally(r Roller, n int) [FaceCount]int {
	var counts [FaceCount]int
	for i := 0; i < n; i++ {
		f := r.Roll()
		if f.Valid() {
			counts[f]++
		}
	}
	return counts
}

// Frequencies converts counts into observed relative frequencies.
func Frequencies(counts [FaceCount]int) [FaceCount]float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	var freq [FaceCount]float64
	if total == 0 {
		return freq
	}
	for i, c := range counts {
		freq[i] = float64(c) / float64(total)
	}
	return freq
}

// GoodnessOfFit runs Pearson's chi-square test of counts against
// Probabilities and returns the statistic and its p-value.
func GoodnessOfFit(counts [FaceCount]int) (chi2, pValue float64, err error) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, 0, errors.New("dice: goodness of fit needs at least one throw")
	}

	for i, c := range counts {
		expected := Probabilities[i] * float64(total)
		diff := float64(c) - expected
		chi2 += diff * diff / expected
	}

	dist := distuv.ChiSquared{K: FaceCount - 1}
	return chi2, dist.Survival(chi2), nil
}
