package types

// Type is one of the FanC primitive types.
type Type int

const (
	Void Type = iota
	Int
	Byte
	Bool
	String
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Byte:
		return "byte"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// FromKeyword maps a type keyword to its Type.
func FromKeyword(kw string) (Type, bool) {
	switch kw {
	case "int":
		return Int, true
	case "byte":
		return Byte, true
	case "bool":
		return Bool, true
	case "string":
		return String, true
	case "void":
		return Void, true
	}
	return Void, false
}

func IsNumeric(t Type) bool {
	return t == Int || t == Byte
}

// CanAssign reports whether a value of type src may be stored where dst is
// expected. Identical types are always assignable; byte widens to int.
func CanAssign(dst, src Type) bool {
	if dst == src {
		return true
	}
	return dst == Int && src == Byte
}

// Widen returns the result type of arithmetic on two numeric operands.
func Widen(a, b Type) Type {
	if a == Int || b == Int {
		return Int
	}
	return Byte
}

// Names renders a type list the way prototypes are printed: "int,byte".
func Names(ts []Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}
