package scoring

import "strconv"

// Aggregate returns the weighted sum of the sub-scores rounded to one decimal.
// Dimensions missing from subScores count as 0.
func Aggregate(subScores map[Dimension]float64, weights Weights) float64 {
	total := 0.0
	for _, d := range Dimensions {
		total += weights[d] * clampScore(subScores[d])
	}
	return round1(clampScore(total))
}

// round1 rounds half to even at one decimal place using the exact decimal
// value of v, so 72.25 becomes 72.2 and 2.5499999999999998 becomes 2.5.
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
