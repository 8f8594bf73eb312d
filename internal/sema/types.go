package sema

// Type is the coarse static type of an expression.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeNumber
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}
