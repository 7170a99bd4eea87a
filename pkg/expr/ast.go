package expr

import "fmt"

// ParsedExpression is a validated two-operand expression. Both operands are
// guaranteed to belong to the same numeral system and to lie in range.
type ParsedExpression struct {
	First    string
	Second   string
	Operator Operator
	Roman    bool
}

// String renders the expression in its canonical, whitespace-free form.
func (p *ParsedExpression) String() string {
	return fmt.Sprintf("%s%s%s", p.First, p.Operator, p.Second)
}

// Result is the full outcome of a successful evaluation.
type Result struct {
	Input      string            `json:"input"`
	Expression *ParsedExpression `json:"-"`
	Left       int               `json:"left"`
	Right      int               `json:"right"`
	Value      int               `json:"value"`
	Output     string            `json:"output"`
	Roman      bool              `json:"roman"`
}
