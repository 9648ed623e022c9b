package engine

import (
	"strings"
)

// aggregateFunction folds the numeric results of a range
type aggregateFunction func(numbers []float64) float64

// textFunction transforms the text of a single cell or literal
type textFunction func(text string) string

var calculateSum = func(numbers []float64) float64 {
	sum := 0.0
	for _, number := range numbers {
		sum += number
	}
	return sum
}

var calculateAverage = func(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	return calculateSum(numbers) / float64(len(numbers))
}

var calculateMax = func(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	maxValue := numbers[0]
	for _, number := range numbers[1:] {
		if number > maxValue {
			maxValue = number
		}
	}
	return maxValue
}

var calculateMin = func(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	minValue := numbers[0]
	for _, number := range numbers[1:] {
		if number < minValue {
			minValue = number
		}
	}
	return minValue
}

var calculateCount = func(numbers []float64) float64 {
	return float64(len(numbers))
}

var aggregateFunctions = map[string]aggregateFunction{
	"SUM":     calculateSum,
	"AVERAGE": calculateAverage,
	"MAX":     calculateMax,
	"MIN":     calculateMin,
	"COUNT":   calculateCount,
}

var textFunctions = map[string]textFunction{
	"TRIM":  strings.TrimSpace,
	"UPPER": strings.ToUpper,
	"LOWER": strings.ToLower,
}

// FunctionNames lists every function the formula grammar knows
var FunctionNames = []string{"SUM", "AVERAGE", "MAX", "MIN", "COUNT", "TRIM", "UPPER", "LOWER"}
