package data

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindVoid, "VOID"},
		{KindFloat, "FLOAT"},
		{KindInteger, "INTEGER"},
		{KindSymbol, "SYMBOL"},
		{KindString, "STRING"},
		{KindMultifield, "MULTIFIELD"},
		{KindExternalAddress, "EXTERNAL-ADDRESS"},
		{KindFactAddress, "FACT-ADDRESS"},
		{KindInstanceAddress, "INSTANCE-ADDRESS"},
		{KindInstanceName, "INSTANCE-NAME"},
		{KindAnyNumber, "INTEGER or FLOAT"},
		{KindAnyLexeme, "SYMBOL or STRING"},
		{KindAnyValue, "ANY"},
		{Kind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKind_Matches(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want Kind
		ok   bool
	}{
		{"exact", KindInteger, KindInteger, true},
		{"exact mismatch", KindInteger, KindFloat, false},
		{"integer is number", KindInteger, KindAnyNumber, true},
		{"float is number", KindFloat, KindAnyNumber, true},
		{"symbol is not number", KindSymbol, KindAnyNumber, false},
		{"symbol is lexeme", KindSymbol, KindAnyLexeme, true},
		{"string is lexeme", KindString, KindAnyLexeme, true},
		{"instance name is not lexeme", KindInstanceName, KindAnyLexeme, false},
		{"instance name is instance", KindInstanceName, KindAnyInstance, true},
		{"instance address is instance", KindInstanceAddress, KindAnyInstance, true},
		{"external is address", KindExternalAddress, KindAnyAddress, true},
		{"fact is address", KindFactAddress, KindAnyAddress, true},
		{"instance name is not address", KindInstanceName, KindAnyAddress, false},
		{"integer is any", KindInteger, KindAnyValue, true},
		{"instance name is any", KindInstanceName, KindAnyValue, true},
		{"void is not any", KindVoid, KindAnyValue, false},
		{"union never matches concrete", KindAnyNumber, KindInteger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Matches(tt.want); got != tt.ok {
				t.Errorf("%v.Matches(%v) = %v, want %v", tt.kind, tt.want, got, tt.ok)
			}
		})
	}
}
