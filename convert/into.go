package convert

import (
	"fmt"

	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// Into decodes v into the pointed-to target. The supported target set is
// closed and dispatched by a static type switch; adding a target type means
// adding a case here and its rule on Codec, never modifying existing ones.
func (c Codec) Into(dst any, v data.Value) error {
	switch p := dst.(type) {
	case *bool:
		*p = c.Bool(v)
		return nil
	case *int:
		n, err := c.Int(v)
		if err != nil {
			return err
		}
		*p = n
		return nil
	case *int32:
		n, err := c.Int32(v)
		if err != nil {
			return err
		}
		*p = n
		return nil
	case *int64:
		n, err := c.Int64(v)
		if err != nil {
			return err
		}
		*p = n
		return nil
	case *uint32:
		n, err := c.Uint32(v)
		if err != nil {
			return err
		}
		*p = n
		return nil
	case *uint64:
		n, err := c.Uint64(v)
		if err != nil {
			return err
		}
		*p = n
		return nil
	case *float32:
		f, err := c.Float32(v)
		if err != nil {
			return err
		}
		*p = f
		return nil
	case *float64:
		f, err := c.Float64(v)
		if err != nil {
			return err
		}
		*p = f
		return nil
	case *string:
		s, err := c.String(v)
		if err != nil {
			return err
		}
		*p = s
		return nil
	case *[]string:
		ss, err := c.Strings(v)
		if err != nil {
			return err
		}
		*p = ss
		return nil
	case *data.Value:
		*p = v
		return nil
	case nil:
		return errors.New(errors.OpExtract, errors.KindTypeMismatch).
			Detail("nil destination").
			Build()
	}
	return errors.Unsupported(errors.OpExtract, fmt.Sprintf("%T", dst))
}

// As converts v into the statically chosen target type through the closed
// set behind Into.
func As[T any](c Codec, v data.Value) (T, error) {
	var out T
	err := c.Into(&out, v)
	return out, err
}
