package engine

import (
	"errors"
	"fmt"
	"gridCalc/contracts"
	"strings"
)

const DefaultMaxDepth = 4096

var FunctionCallError = errors.New("malformed function call")

// FormulaEvaluator resolves displayed values from a cell reader. Nothing is
// cached between calls: every Resolve reads the live cells again.
type FormulaEvaluator struct {
	reader   contracts.CellReader
	ranges   *RangeResolver
	maxDepth int
}

func NewFormulaEvaluator(reader contracts.CellReader, maxDepth int) *FormulaEvaluator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &FormulaEvaluator{
		reader:   reader,
		ranges:   NewRangeResolver(),
		maxDepth: maxDepth,
	}
}

// Resolve returns what the cell displays: its literal, the result of its
// formula, or an error marker. It never fails.
func (e *FormulaEvaluator) Resolve(address string) contracts.Value {
	return e.withContext(func(ctx *EvaluationContext) contracts.Value {
		return e.resolve(address, ctx)
	})
}

// EvaluateFormula evaluates formula text that is not stored in any cell
func (e *FormulaEvaluator) EvaluateFormula(formula string) contracts.Value {
	return e.withContext(func(ctx *EvaluationContext) contracts.Value {
		return e.evaluateFormula(formula, ctx)
	})
}

func (e *FormulaEvaluator) withContext(evaluate func(ctx *EvaluationContext) contracts.Value) (result contracts.Value) {
	ctx := NewEvaluationContext(e.maxDepth)

	defer func() {
		if recover() != nil {
			result = contracts.ErrorValue
		}
	}()

	result = evaluate(ctx)
	if ctx.DepthExceeded() {
		return contracts.ErrorValue
	}

	return result
}

func (e *FormulaEvaluator) resolve(address string, ctx *EvaluationContext) contracts.Value {
	if ctx.InProgress(address) {
		return contracts.CircularValue
	}

	cell, ok := e.reader.GetCell(address)
	if !ok {
		return contracts.EmptyValue
	}

	if cell.Formula == "" {
		return cell.Value
	}

	if !ctx.Enter(address) {
		return contracts.ErrorValue
	}
	defer ctx.Leave(address)

	return e.evaluateFormula(cell.Formula, ctx)
}

func (e *FormulaEvaluator) evaluateFormula(formula string, ctx *EvaluationContext) contracts.Value {
	if !IsFormula(formula) {
		return ParseLiteral(formula)
	}

	expression := strings.TrimSpace(strings.TrimPrefix(formula, FormulaPrefix))

	for _, name := range FunctionNames {
		if !strings.HasPrefix(expression, name+"(") {
			continue
		}

		argument, err := functionArgument(expression)
		if err != nil {
			return contracts.ErrorValue
		}

		if aggregate, ok := aggregateFunctions[name]; ok {
			return e.evaluateAggregate(aggregate, argument, ctx)
		}

		return e.evaluateText(textFunctions[name], argument, ctx)
	}

	return e.evaluateArithmetic(expression, ctx)
}

// functionArgument returns the text between the first `(` and the last `)`.
// Only blanks may follow the closing parenthesis.
func functionArgument(expression string) (string, error) {
	open := strings.Index(expression, "(")
	closing := strings.LastIndex(expression, ")")

	if open < 0 || closing < open {
		return "", fmt.Errorf("`%s`: %w", expression, FunctionCallError)
	}

	if strings.TrimSpace(expression[closing+1:]) != "" {
		return "", fmt.Errorf("`%s`: %w: trailing input", expression, FunctionCallError)
	}

	return expression[open+1 : closing], nil
}

func (e *FormulaEvaluator) evaluateAggregate(aggregate aggregateFunction, argument string, ctx *EvaluationContext) contracts.Value {
	addresses, err := e.ranges.Iterate(strings.TrimSpace(argument))
	if err != nil {
		return contracts.ErrorValue
	}

	var numbers []float64
	for address := range addresses {
		if !IsAddress(address) {
			return contracts.ErrorValue
		}

		if value := e.resolve(address, ctx); value.IsNumber() {
			numbers = append(numbers, value.Number)
		}
	}

	return contracts.NumberValue(aggregate(numbers))
}

// evaluateText keeps an error marker of the referenced cell as it is
func (e *FormulaEvaluator) evaluateText(transform textFunction, argument string, ctx *EvaluationContext) contracts.Value {
	if !IsAddress(argument) {
		return contracts.TextValue(transform(argument))
	}

	value := e.resolve(argument, ctx)
	if value.IsError() {
		return value
	}

	return contracts.TextValue(transform(value.String()))
}

func (e *FormulaEvaluator) evaluateArithmetic(expression string, ctx *EvaluationContext) contracts.Value {
	node, err := ParseExpression(expression)
	if err != nil {
		return contracts.ErrorValue
	}

	return node.Eval(func(address string) contracts.Value {
		return e.resolve(address, ctx)
	})
}
