package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RoundWithFourDecimalPlace arredonda razões como o CTR, que perderiam
// precisão com duas casas
func RoundWithFourDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10000) / 10000
}

// SafeDivide retorna 0 quando o denominador é zero
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}
