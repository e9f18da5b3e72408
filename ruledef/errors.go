package ruledef

import (
	"github.com/rexlang/rexlang"
)

// Error codes for rule definition parsing. All errors returned by this
// package are *rexlang.Error values carrying one of these codes.
const (
	MissingNonTermMarkerError = iota + 1
	EmptyNameError
	NameTooLongError
	MissingAssignmentError
	MissingBodyError
	DuplicateDefinitionError
	OperatorWithoutOperandError
	IncompleteEscapeError
	InvalidEscapeWarning
	CapacityExceededError
)

func markerError(line, col int, rest string) *rexlang.Error {
	return rexlang.FormatError(MissingNonTermMarkerError, line, col,
		"malformed rule, each line must define a non-terminal: %q", rest)
}

func emptyNameError(line, col int) *rexlang.Error {
	return rexlang.NewError(EmptyNameError, line, col, "empty non-terminal name")
}

func nameTooLongError(line, col int, name string, limit int) *rexlang.Error {
	return rexlang.FormatError(NameTooLongError, line, col,
		"non-terminal name %q exceeds %d characters", name, limit)
}

func missingAssignmentError(line, col int) *rexlang.Error {
	return rexlang.NewError(MissingAssignmentError, line, col,
		"missing ':=' after non-terminal name")
}

func missingBodyError(line, col int) *rexlang.Error {
	return rexlang.NewError(MissingBodyError, line, col,
		"missing definition of a non-terminal")
}

func duplicateDefError(line, col int, name string) *rexlang.Error {
	return rexlang.FormatError(DuplicateDefinitionError, line, col,
		"re-definition of non-terminal %q", name)
}

func operatorOperandError(line, col int) *rexlang.Error {
	return rexlang.NewError(OperatorWithoutOperandError, line, col,
		"an operator without an operand")
}

func incompleteEscapeError(line, col int) *rexlang.Error {
	return rexlang.NewError(IncompleteEscapeError, line, col,
		"an escape sequence at the end of a token")
}

func invalidEscapeWarning(line, col int) *rexlang.Error {
	return rexlang.NewError(InvalidEscapeWarning, line, col,
		"incorrect escape sequence")
}

func capacityError(line, col int, cause error) *rexlang.Error {
	return rexlang.FormatError(CapacityExceededError, line, col, "%s", cause.Error())
}
