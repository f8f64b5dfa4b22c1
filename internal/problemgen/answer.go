package problemgen

import "math"

// Tolerance is the absolute difference below which two answers are equal.
// It does not scale with magnitude, so answers in the millions are graded
// just as strictly as answers below one.
const Tolerance = 0.01

// IsCorrect reports whether userAnswer matches correctAnswer within
// Tolerance. The comparison is strict: a difference of exactly 0.01 is
// wrong.
//
// The difference is rounded to 9 decimal places first so that decimal
// inputs compare as written: 10.01 - 10 is 0.00999999999999979 in binary
// floating point but must count as 0.01.
func IsCorrect(userAnswer, correctAnswer float64) bool {
	diff := math.Abs(userAnswer - correctAnswer)
	diff = math.Round(diff*1e9) / 1e9
	return diff < Tolerance
}
