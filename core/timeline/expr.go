// Package timeline turns wave relative time expressions into a single
// absolute timeline.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrSyntax is wrapped by every expression parse error.
	ErrSyntax = errors.New("invalid time expression")
	// ErrRange is wrapped when a finite result does not fit a 32 bit time.
	ErrRange = errors.New("time expression out of range")
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokWave
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	num  float64
	op   byte
	pos  int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{kind: tokOp, op: c, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case c == 'w' || c == 'W':
			toks = append(toks, token{kind: tokWave, pos: i})
			i++
		case (c >= '0' && c <= '9') || c == '.':
			j := i
			for j < len(s) && ((s[j] >= '0' && s[j] <= '9') || s[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, s[i:j])
			}
			toks = append(toks, token{kind: tokNumber, num: v, pos: i})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s)}), nil
}

// Expr is a parsed time expression.
type Expr struct {
	root node
	src  string
}

type node interface {
	eval(w float64) float64
}

type numNode float64

func (n numNode) eval(float64) float64 { return float64(n) }

type waveNode struct{}

func (waveNode) eval(w float64) float64 { return w }

type negNode struct{ x node }

func (n negNode) eval(w float64) float64 { return -n.x.eval(w) }

type binNode struct {
	op   byte
	l, r node
}

func (n binNode) eval(w float64) float64 {
	l, r := n.l.eval(w), n.r.eval(w)
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	default:
		return l / r
	}
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t.kind == tokOp && (t.op == '+' || t.op == '-'); t = p.peek() {
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binNode{op: t.op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t.kind == tokOp && (t.op == '*' || t.op == '/'); t = p.peek() {
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binNode{op: t.op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	t := p.peek()
	if t.kind == tokOp && (t.op == '+' || t.op == '-') {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.op == '-' {
			return negNode{x: x}, nil
		}
		return x, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numNode(t.num), nil
	case tokWave:
		return waveNode{}, nil
	case tokLParen:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing ')' at %d", ErrSyntax, c.pos)
		}
		return x, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected token at %d", ErrSyntax, t.pos)
	}
}

// Parse compiles a time expression. The only identifier is w, the
// duration of the wave the operation belongs to.
func Parse(s string) (*Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrSyntax)
	}
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: trailing input at %d", ErrSyntax, t.pos)
	}
	return &Expr{root: root, src: s}, nil
}

// Eval evaluates the expression for a wave of duration w and floors the
// result. Non finite results evaluate to 0; finite results outside the
// 32 bit range fail with ErrRange.
func (e *Expr) Eval(w int) (int, error) {
	v := math.Floor(e.root.eval(float64(w)))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s is %.0f for w=%d", ErrRange, e.src, v, w)
	}
	return int(v), nil
}

func (e *Expr) String() string { return e.src }

// Eval parses and evaluates s in one step.
func Eval(s string, w int) (int, error) {
	e, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return e.Eval(w)
}

// Check validates the syntax of s without evaluating it.
func Check(s string) error {
	_, err := Parse(s)
	return err
}
