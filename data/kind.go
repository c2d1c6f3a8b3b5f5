package data

import "fmt"

// Kind identifies the engine-native type of a value's payload.
type Kind uint8

// Concrete kinds. The zero value is KindVoid, the absence of a result.
const (
	KindVoid Kind = iota
	KindFloat
	KindInteger
	KindSymbol
	KindString
	KindMultifield
	KindExternalAddress
	KindFactAddress
	KindInstanceAddress
	KindInstanceName
)

// Union kinds, usable only as argument constraints. They never appear as
// the kind of a stored value.
const (
	KindAnyNumber   Kind = iota + 100 // KindInteger or KindFloat
	KindAnyLexeme                     // KindSymbol or KindString
	KindAnyInstance                   // KindInstanceAddress or KindInstanceName
	KindAnyAddress                    // KindExternalAddress, KindFactAddress or KindInstanceAddress
	KindAnyValue                      // any concrete kind except KindVoid
)

var kindNames = map[Kind]string{
	KindVoid:            "VOID",
	KindFloat:           "FLOAT",
	KindInteger:         "INTEGER",
	KindSymbol:          "SYMBOL",
	KindString:          "STRING",
	KindMultifield:      "MULTIFIELD",
	KindExternalAddress: "EXTERNAL-ADDRESS",
	KindFactAddress:     "FACT-ADDRESS",
	KindInstanceAddress: "INSTANCE-ADDRESS",
	KindInstanceName:    "INSTANCE-NAME",
	KindAnyNumber:       "INTEGER or FLOAT",
	KindAnyLexeme:       "SYMBOL or STRING",
	KindAnyInstance:     "INSTANCE-ADDRESS or INSTANCE-NAME",
	KindAnyAddress:      "ADDRESS",
	KindAnyValue:        "ANY",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Matches reports whether a value of kind k satisfies the constraint want.
// want may be a concrete kind or a union kind.
func (k Kind) Matches(want Kind) bool {
	switch want {
	case KindAnyNumber:
		return k == KindInteger || k == KindFloat
	case KindAnyLexeme:
		return k == KindSymbol || k == KindString
	case KindAnyInstance:
		return k == KindInstanceAddress || k == KindInstanceName
	case KindAnyAddress:
		return k == KindExternalAddress || k == KindFactAddress || k == KindInstanceAddress
	case KindAnyValue:
		return k >= KindFloat && k <= KindInstanceName
	}
	return k == want
}

// pointerLabel names an address kind inside the <Kind>0x<handle> render.
func pointerLabel(k Kind) string {
	switch k {
	case KindExternalAddress:
		return "ExternalAddress"
	case KindFactAddress:
		return "FactAddress"
	case KindInstanceAddress:
		return "InstanceAddress"
	case KindMultifield:
		return "Multifield"
	}
	return "Unknown"
}
