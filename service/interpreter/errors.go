package interpreter

import "errors"

var (
	ErrUnknownOpcode     = errors.New("interpreter: unknown command")
	ErrArgumentCount     = errors.New("interpreter: wrong argument count")
	ErrUndefinedVariable = errors.New("interpreter: variable not found")
	ErrInvalidValue      = errors.New("interpreter: invalid value")
	ErrNoVariableSlot    = errors.New("interpreter: no memory space for variable")
	ErrTokenTooLong      = errors.New("interpreter: token too long")
)
