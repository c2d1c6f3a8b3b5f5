package runtime

import (
	"fmt"
	"math"
	"reflect"

	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// Symbol marks a string for conversion to a bare SYMBOL argument instead
// of a quoted STRING.
type Symbol string

// InstanceName marks a string for conversion to an INSTANCE-NAME
// argument, rendered [name].
type InstanceName string

// External marks an opaque payload for conversion to an EXTERNAL-ADDRESS
// argument. The payload's Go type must have been registered with the
// instance beforehand; an unregistered type fails the append.
type External struct {
	Payload any
}

// encode appends the engine values for one Go argument to dst. Slices and
// arrays flatten element by element, each element encoded recursively.
// dst is returned grown; on error it is returned unchanged in content but
// the caller discards it anyway.
func (env *Environment) encode(dst []data.Value, v any) ([]data.Value, error) {
	switch x := v.(type) {
	case nil:
		return dst, errors.Unsupported(errors.OpBuild, "untyped nil")
	case data.Value:
		if x.IsVoid() {
			return dst, errors.Unsupported(errors.OpBuild, "void value")
		}
		return append(dst, x), nil
	case bool:
		if x {
			return append(dst, data.SymbolValue(env.eng.TrueSymbol())), nil
		}
		return append(dst, data.SymbolValue(env.eng.FalseSymbol())), nil
	case int:
		return append(dst, env.intVal(int64(x))), nil
	case int8:
		return append(dst, env.intVal(int64(x))), nil
	case int16:
		return append(dst, env.intVal(int64(x))), nil
	case int32:
		return append(dst, env.intVal(int64(x))), nil
	case int64:
		return append(dst, env.intVal(x)), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return dst, overflowArg(x)
		}
		return append(dst, env.intVal(int64(x))), nil
	case uint8:
		return append(dst, env.intVal(int64(x))), nil
	case uint16:
		return append(dst, env.intVal(int64(x))), nil
	case uint32:
		return append(dst, env.intVal(int64(x))), nil
	case uint64:
		if x > math.MaxInt64 {
			return dst, overflowArg(x)
		}
		return append(dst, env.intVal(int64(x))), nil
	case float32:
		return append(dst, env.floatVal(float64(x))), nil
	case float64:
		return append(dst, env.floatVal(x)), nil
	case string:
		return append(dst, env.strVal(x)), nil
	case Symbol:
		return append(dst, env.symVal(string(x))), nil
	case InstanceName:
		return append(dst, data.InstanceNameValue(env.eng.InternSymbol(string(x)))), nil
	case External:
		val, err := env.externalValue(x.Payload)
		if err != nil {
			return dst, err
		}
		return append(dst, val), nil
	case *data.Multifield:
		return append(dst, data.MultifieldValue(x)), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		var err error
		for i := 0; i < rv.Len(); i++ {
			dst, err = env.encode(dst, rv.Index(i).Interface())
			if err != nil {
				return dst, err
			}
		}
		return dst, nil
	}
	return dst, errors.Unsupported(errors.OpBuild, fmt.Sprintf("%T", v))
}

// externalValue wraps payload as an external-address value, looking its Go
// type up in the instance's registry.
func (env *Environment) externalValue(payload any) (data.Value, error) {
	if payload == nil {
		return data.VoidValue(), errors.Unsupported(errors.OpBuild, "nil external payload")
	}
	id, err := env.registry.Lookup(env.eng, reflect.TypeOf(payload))
	if err != nil {
		return data.VoidValue(), err
	}
	return data.ExternalValue(env.eng.NewExternal(payload, int(id))), nil
}

func (env *Environment) intVal(n int64) data.Value {
	return data.IntegerValue(env.eng.InternInteger(n))
}

func (env *Environment) floatVal(x float64) data.Value {
	return data.FloatValue(env.eng.InternFloat(x))
}

func (env *Environment) strVal(s string) data.Value {
	return data.StringValue(env.eng.InternSymbol(s))
}

func (env *Environment) symVal(s string) data.Value {
	return data.SymbolValue(env.eng.InternSymbol(s))
}

func overflowArg(v any) *errors.Error {
	return errors.New(errors.OpBuild, errors.KindOverflow).
		Type("INTEGER").
		Value(v).
		Detail("value %v overflows INTEGER", v).
		Build()
}
