package data

import "testing"

func TestMultifield_OneBasedAccess(t *testing.T) {
	m := NewMultifield(3, 9)

	m.SetElementAt(1, IntegerValue(NewInteger(10)))
	m.SetElementAt(2, SymbolValue(NewSymbol("mid")))
	m.SetElementAt(3, StringValue(NewSymbol("end")))

	if m.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", m.Length())
	}

	first, ok := m.ElementAt(1).Integer()
	if !ok || first.Value() != 10 {
		t.Errorf("ElementAt(1) = %v, want integer 10", m.ElementAt(1))
	}
	if m.ElementAt(2).Kind() != KindSymbol {
		t.Errorf("ElementAt(2) kind = %v, want Symbol", m.ElementAt(2).Kind())
	}
	if m.ElementAt(3).Kind() != KindString {
		t.Errorf("ElementAt(3) kind = %v, want String", m.ElementAt(3).Kind())
	}
	if m.Handle() != 9 {
		t.Errorf("Handle() = %d, want 9", m.Handle())
	}
}

func TestMultifield_String(t *testing.T) {
	m := NewMultifield(3, 1)
	m.SetElementAt(1, IntegerValue(NewInteger(1)))
	m.SetElementAt(2, StringValue(NewSymbol("two")))
	m.SetElementAt(3, SymbolValue(NewSymbol("three")))

	if got, want := m.String(), `(1 "two" three)`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	empty := NewMultifield(0, 2)
	if got := empty.String(); got != "()" {
		t.Errorf("empty String() = %q, want ()", got)
	}
}

func TestMultifield_WalkIsAscending(t *testing.T) {
	m := NewMultifield(4, 1)
	for i := 1; i <= 4; i++ {
		m.SetElementAt(i, IntegerValue(NewInteger(int64(i*11))))
	}

	v := MultifieldValue(m)
	begin, end := v.Range()

	var got []int64
	for i := begin; i <= end; i++ {
		n, ok := m.ElementAt(i).Integer()
		if !ok {
			t.Fatalf("element %d is not an integer", i)
		}
		got = append(got, n.Value())
	}

	want := []int64{11, 22, 33, 44}
	if len(got) != len(want) {
		t.Fatalf("walked %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %d, want %d", i+1, got[i], want[i])
		}
	}
}
