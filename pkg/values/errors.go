package values

import (
	"fmt"

	"github.com/lemonberrylabs/losp/pkg/ast"
)

// Tag names the error taxonomy category. LospError carries exactly one
// tag — the taxonomy is a partition, not an overlapping label set — plus
// an optional source node so a host can report the offending position.
type Tag string

const (
	TagSyntax              Tag = "SyntaxError"
	TagName                Tag = "NameError"
	TagArity               Tag = "ArityError"
	TagType                Tag = "TypeError"
	TagSpecialOpMisuse     Tag = "SpecialOperatorMisuseError"
	TagAsyncContract       Tag = "AsyncContractError"
	TagInternal            Tag = "InternalError"
)

// LospError is the error type every evaluator/parser failure surfaces as.
type LospError struct {
	Message string
	Tag     Tag
	Source  ast.Node // nil when there is no associated node
}

func (e *LospError) Error() string {
	if e.Source != nil {
		if op, ok := operatorID(e.Source); ok {
			return fmt.Sprintf("%s: %s", op, e.Message)
		}
	}
	return e.Message
}

// operatorID extracts an id to prepend to operator-sourced error messages:
// printing prepends the operator's id for operator-sourced errors.
func operatorID(n ast.Node) (string, bool) {
	switch op := n.(type) {
	case *ast.Operator:
		return op.ID, true
	case *ast.SpecialOperator:
		return op.ID, true
	}
	return "", false
}

func NewSyntaxError(msg string) *LospError {
	return &LospError{Message: msg, Tag: TagSyntax}
}

func NewNameError(msg string) *LospError {
	return &LospError{Message: msg, Tag: TagName}
}

// NewArityErrorExactly reports a wrong argument count against an exact
// requirement.
func NewArityErrorExactly(source ast.Node, want, got int) *LospError {
	return &LospError{
		Message: fmt.Sprintf("expected exactly %d argument(s), got %d", want, got),
		Tag:     TagArity,
		Source:  source,
	}
}

// NewArityErrorAtLeast reports a wrong argument count against a minimum
// requirement.
func NewArityErrorAtLeast(source ast.Node, min, got int) *LospError {
	return &LospError{
		Message: fmt.Sprintf("expected at least %d argument(s), got %d", min, got),
		Tag:     TagArity,
		Source:  source,
	}
}

// NewTypeError reports that the argument at index i expected type want but
// got type got (got == "" means missing entirely).
func NewTypeError(source ast.Node, index int, want string, got string) *LospError {
	if got == "" {
		got = "missing"
	}
	return &LospError{
		Message: fmt.Sprintf("argument %d: expected %s, got %s", index, want, got),
		Tag:     TagType,
		Source:  source,
	}
}

// NewTypeErrorMsg is for type errors whose message doesn't fit the
// positional-argument template (property access, merge, etc.).
func NewTypeErrorMsg(source ast.Node, msg string) *LospError {
	return &LospError{Message: msg, Tag: TagType, Source: source}
}

func NewSpecialOpMisuseError(msg string) *LospError {
	return &LospError{Message: msg, Tag: TagSpecialOpMisuse}
}

func NewAsyncContractError(msg string) *LospError {
	return &LospError{Message: msg, Tag: TagAsyncContract}
}

func NewInternalError(msg string) *LospError {
	return &LospError{Message: msg, Tag: TagInternal}
}
