package engine

import (
	"errors"
	"fmt"
	"gridCalc/contracts"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

var ExpressionSyntaxError = errors.New("expression syntax error")

// MaxExpressionNesting bounds how deep parentheses and prefix minus may nest
const MaxExpressionNesting = 256

var numberLiteralRegex = regexp.MustCompile(`^([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

type BinaryOperator byte

const (
	OperatorAdd BinaryOperator = '+'
	OperatorSub BinaryOperator = '-'
	OperatorMul BinaryOperator = '*'
	OperatorDiv BinaryOperator = '/'
)

// ReferenceResolver supplies the value of an address token during evaluation
type ReferenceResolver func(address string) contracts.Value

// ExpressionNode is one node of a parsed arithmetic expression
type ExpressionNode interface {
	Eval(resolve ReferenceResolver) contracts.Value
}

type NumberNode struct {
	Value float64
}

type TextNode struct {
	Value string
}

type ReferenceNode struct {
	Address string
}

type UnaryNode struct {
	Negate  bool
	Operand ExpressionNode
}

type BinaryNode struct {
	Operator BinaryOperator
	Left     ExpressionNode
	Right    ExpressionNode
}

type ParenNode struct {
	Inner ExpressionNode
}

func (n *NumberNode) Eval(ReferenceResolver) contracts.Value {
	return contracts.NumberValue(n.Value)
}

func (n *TextNode) Eval(ReferenceResolver) contracts.Value {
	return contracts.TextValue(n.Value)
}

// Eval substitutes the referenced value: an empty cell reads as 0
func (n *ReferenceNode) Eval(resolve ReferenceResolver) contracts.Value {
	value := resolve(n.Address)
	if value.IsEmpty() {
		return contracts.NumberValue(0)
	}

	return value
}

func (n *UnaryNode) Eval(resolve ReferenceResolver) contracts.Value {
	operand := n.Operand.Eval(resolve)
	switch {
	case operand.IsError():
		return operand
	case !operand.IsNumber():
		return contracts.ErrorValue
	case n.Negate:
		return contracts.NumberValue(-operand.Number)
	default:
		return operand
	}
}

// Eval walks the left spine of an operator chain iteratively, so a long
// `A1+A2+...` chain costs no stack.
func (n *BinaryNode) Eval(resolve ReferenceResolver) contracts.Value {
	chain := []*BinaryNode{n}
	for {
		left, ok := chain[len(chain)-1].Left.(*BinaryNode)
		if !ok {
			break
		}
		chain = append(chain, left)
	}

	result := chain[len(chain)-1].Left.Eval(resolve)
	for i := len(chain) - 1; i >= 0; i-- {
		result = chain[i].apply(result, chain[i].Right.Eval(resolve))
	}

	return result
}

func (n *BinaryNode) apply(left contracts.Value, right contracts.Value) contracts.Value {
	if left.IsError() {
		return left
	}
	if right.IsError() {
		return right
	}
	if !left.IsNumber() || !right.IsNumber() {
		return contracts.ErrorValue
	}

	var result float64
	switch n.Operator {
	case OperatorAdd:
		result = left.Number + right.Number
	case OperatorSub:
		result = left.Number - right.Number
	case OperatorMul:
		result = left.Number * right.Number
	case OperatorDiv:
		if right.Number == 0 {
			return contracts.ErrorValue
		}
		result = left.Number / right.Number
	default:
		return contracts.ErrorValue
	}

	if !isFinite(result) {
		return contracts.ErrorValue
	}

	return contracts.NumberValue(result)
}

func (n *ParenNode) Eval(resolve ReferenceResolver) contracts.Value {
	return n.Inner.Eval(resolve)
}

// ParseExpression builds the tree for `+ - * / ( )` over numbers, double-quoted
// strings and cell addresses. Anything else is a syntax error.
func ParseExpression(expression string) (ExpressionNode, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, err
	}

	p := &expressionParser{tokens: tokens}
	node, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.tokens) {
		return nil, p.unexpected()
	}

	return node, nil
}

type expressionParser struct {
	tokens  []efp.Token
	pos     int
	nesting int
}

func (p *expressionParser) peek() *efp.Token {
	if p.pos < len(p.tokens) {
		return &p.tokens[p.pos]
	}

	return nil
}

func (p *expressionParser) unexpected() error {
	if current := p.peek(); current != nil {
		return fmt.Errorf("%w: unexpected `%s` at token %d", ExpressionSyntaxError, current.TValue, p.pos)
	}

	return fmt.Errorf("%w: unexpected end of expression", ExpressionSyntaxError)
}

// enter counts one more level of parentheses or prefix minus
func (p *expressionParser) enter() error {
	p.nesting++
	if p.nesting > MaxExpressionNesting {
		return fmt.Errorf("%w: nesting deeper than %d", ExpressionSyntaxError, MaxExpressionNesting)
	}

	return nil
}

func (p *expressionParser) leave() {
	p.nesting--
}

func (p *expressionParser) matchOperator(operators string) (BinaryOperator, bool) {
	current := p.peek()
	if current == nil || current.TType != efp.TokenTypeOperatorInfix {
		return 0, false
	}

	if index := strings.Index(operators, current.TValue); index >= 0 {
		p.pos++
		return BinaryOperator(operators[index]), true
	}

	return 0, false
}

func (p *expressionParser) parseAddSub() (ExpressionNode, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}

	for {
		operator, ok := p.matchOperator("+-")
		if !ok {
			return left, nil
		}

		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: operator, Left: left, Right: right}
	}
}

func (p *expressionParser) parseMulDiv() (ExpressionNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		operator, ok := p.matchOperator("*/")
		if !ok {
			return left, nil
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: operator, Left: left, Right: right}
	}
}

// parseUnary handles prefix minus. The tokenizer already drops a prefix plus.
func (p *expressionParser) parseUnary() (ExpressionNode, error) {
	current := p.peek()
	if current == nil || current.TType != efp.TokenTypeOperatorPrefix {
		return p.parsePrimary()
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.pos++
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &UnaryNode{Negate: true, Operand: operand}, nil
}

func (p *expressionParser) parsePrimary() (ExpressionNode, error) {
	current := p.peek()
	if current == nil {
		return nil, p.unexpected()
	}

	switch {
	case current.TSubType == efp.TokenSubTypeNumber:
		number, err := strconv.ParseFloat(current.TValue, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number `%s`", ExpressionSyntaxError, current.TValue)
		}
		p.pos++
		return &NumberNode{Value: number}, nil
	case current.TSubType == efp.TokenSubTypeText:
		p.pos++
		return &TextNode{Value: current.TValue}, nil
	case current.TSubType == efp.TokenSubTypeRange:
		p.pos++
		return &ReferenceNode{Address: current.TValue}, nil
	case current.TType == efp.TokenTypeSubexpression && current.TSubType == efp.TokenSubTypeStart:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		p.pos++
		inner, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}

		closing := p.peek()
		if closing == nil || closing.TType != efp.TokenTypeSubexpression || closing.TSubType != efp.TokenSubTypeStop {
			return nil, p.unexpected()
		}
		p.pos++
		return &ParenNode{Inner: inner}, nil
	default:
		return nil, p.unexpected()
	}
}

// tokenize runs the Excel formula lexer and keeps only the tokens of the
// four-operator grammar: numbers, text, single cell operands, infix `+ - * /`,
// prefix minus and parentheses.
func tokenize(expression string) ([]efp.Token, error) {
	parser := efp.ExcelParser()
	tokens := parser.Parse(FormulaPrefix + expression)

	if parser.InString || parser.InPath || parser.InRange || parser.InError {
		return nil, fmt.Errorf("%w: unterminated literal", ExpressionSyntaxError)
	}

	for index, token := range tokens {
		if !isGrammarToken(token) {
			return nil, fmt.Errorf("%w: unexpected `%s` at token %d", ExpressionSyntaxError, token.TValue, index)
		}
	}

	return tokens, nil
}

func isGrammarToken(token efp.Token) bool {
	switch token.TType {
	case efp.TokenTypeOperand:
		switch token.TSubType {
		case efp.TokenSubTypeNumber:
			return numberLiteralRegex.MatchString(token.TValue)
		case efp.TokenSubTypeText:
			return true
		case efp.TokenSubTypeRange:
			return IsAddress(token.TValue)
		}
	case efp.TokenTypeOperatorInfix:
		return token.TSubType == efp.TokenSubTypeMath && len(token.TValue) == 1 && strings.Contains("+-*/", token.TValue)
	case efp.TokenTypeOperatorPrefix:
		return token.TValue == "-"
	case efp.TokenTypeSubexpression:
		return token.TSubType == efp.TokenSubTypeStart || token.TSubType == efp.TokenSubTypeStop
	}

	return false
}

func isFinite(number float64) bool {
	return !math.IsNaN(number) && !math.IsInf(number, 0)
}
