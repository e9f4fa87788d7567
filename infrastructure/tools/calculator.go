// Package tools provides the builtin tool set.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mcparena/arena-go/domain/tool"
)

var errBadExpression = errors.New("invalid expression")

type calculatorInput struct {
	Expression string `json:"expression"`
}

// NewCalculator builds a tool that evaluates arithmetic expressions.
// Only numeric literals and the operators + - * / % ^ with parentheses
// are accepted, so arbitrary code can never run.
func NewCalculator() tool.Tool {
	return tool.NewBuilder("calculator").
		WithDescription("Evaluates an arithmetic expression. Supports + - * / % ^ and parentheses.").
		WithInputSchema(tool.ObjectSchema(map[string]json.RawMessage{
			"expression": tool.StringProperty("The arithmetic expression to evaluate, e.g. \"2 * (3 + 4)\""),
		}, []string{"expression"})).
		ReadOnly().
		Idempotent().
		WithRiskLevel(tool.RiskNone).
		WithTags("math").
		WithHandler(evaluateExpression).
		MustBuild()
}

func evaluateExpression(_ context.Context, input json.RawMessage) (tool.Result, error) {
	var in calculatorInput
	if err := json.Unmarshal(input, &in); err != nil {
		return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
	}
	if strings.TrimSpace(in.Expression) == "" {
		return tool.Result{}, fmt.Errorf("%w: empty expression", tool.ErrExecutionFailed)
	}

	value, err := evalExpr(in.Expression)
	if err != nil {
		return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
	}

	return tool.TextResult(formatNumber(value)), nil
}

// formatNumber renders integers without a trailing ".0".
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// evalExpr parses and evaluates with a recursive descent parser.
// Grammar, lowest precedence first:
//
//	expr   = term   { ("+" | "-") term }
//	term   = power  { ("*" | "/" | "%") power }
//	power  = unary  [ "^" power ]
//	unary  = [ "-" | "+" ] atom
//	atom   = number | "(" expr ")"
func evalExpr(expression string) (float64, error) {
	p := &exprParser{input: expression}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q at position %d", errBadExpression, p.input[p.pos], p.pos)
	}
	return value, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("%w: division by zero", errBadExpression)
			}
			left /= right
		case '%':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("%w: division by zero", errBadExpression)
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	if p.peek() == '^' {
		p.pos++
		// Right associative: 2^3^2 = 2^(3^2).
		exponent, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exponent), nil
	}
	return base, nil
}

func (p *exprParser) parseUnary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		value, err := p.parseUnary()
		return -value, err
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parseAtom()
}

func (p *exprParser) parseAtom() (float64, error) {
	c := p.peek()
	if c == '(' {
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("%w: missing closing parenthesis", errBadExpression)
		}
		p.pos++
		return value, nil
	}

	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, fmt.Errorf("%w: expected number at position %d", errBadExpression, start)
	}

	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errBadExpression, p.input[start:p.pos])
	}
	return value, nil
}
