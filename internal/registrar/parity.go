package registrar

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	valueType = reflect.TypeOf(cty.Value{})
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// checkParity verifies that impl can be called with the declared parameter
// types and returns the declared result type.
//
// A cty.Value accepts any token. Int and Double bind to int64 and float64.
// Every other token must equal the type gocty implies for the Go type. A
// function.Function handle is generic, so only its arity is checked.
func checkParity(impl any, params []cty.Type, result cty.Type) error {
	if fn, ok := impl.(function.Function); ok {
		return checkFunctionArity(fn, len(params))
	}

	ft := reflect.TypeOf(impl)
	if ft == nil || ft.Kind() != reflect.Func {
		return fmt.Errorf("handler of type %T is not callable", impl)
	}
	if ft.IsVariadic() {
		return fmt.Errorf("variadic handler %s is not supported", ft)
	}
	if ft.NumIn() != len(params) {
		return fmt.Errorf("handler takes %d parameters, declared %d", ft.NumIn(), len(params))
	}

	var problems []string
	for i, p := range params {
		if err := checkGoType(p, ft.In(i)); err != nil {
			problems = append(problems, fmt.Sprintf("parameter %d: %v", i, err))
		}
	}

	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		problems = append(problems, fmt.Sprintf("handler %s must return one value, optionally followed by an error", ft))
	}
	if ft.NumOut() > 0 {
		if err := checkGoType(result, ft.Out(0)); err != nil {
			problems = append(problems, fmt.Sprintf("result: %v", err))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func checkFunctionArity(fn function.Function, declared int) error {
	n := len(fn.Params())
	if fn.VarParam() != nil {
		if declared < n {
			return fmt.Errorf("generic handler takes at least %d parameters, declared %d", n, declared)
		}
		return nil
	}
	if declared != n {
		return fmt.Errorf("generic handler takes %d parameters, declared %d", n, declared)
	}
	return nil
}

func checkGoType(declared cty.Type, goType reflect.Type) error {
	if goType == valueType {
		return nil
	}

	switch {
	case optype.IsDynamic(declared):
		return fmt.Errorf("declared any, handler uses %s instead of cty.Value", goType)
	case declared.Equals(optype.Int):
		if goType.Kind() == reflect.Int64 {
			return nil
		}
	case declared.Equals(optype.Double):
		if goType.Kind() == reflect.Float64 {
			return nil
		}
	case goType.Kind() == reflect.Interface:
	default:
		implied, err := gocty.ImpliedType(reflect.Zero(goType).Interface())
		if err != nil {
			return fmt.Errorf("declared %s, but no type can be implied from %s: %v", optype.Name(declared), goType, err)
		}
		if declared.Equals(implied) {
			return nil
		}
	}
	return fmt.Errorf("declared %s, handler uses %s", optype.Name(declared), goType)
}
