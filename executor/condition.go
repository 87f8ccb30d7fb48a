package executor

import (
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"
)

// EvalGuard runs a javascript expression with `$` bound to the run's data
// map and returns its boolean result.
func EvalGuard(expression string, data map[string]any) (bool, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return false, err
	}
	vm := goja.New()
	script := fmt.Sprintf("var $ = %s;\n%s", encoded, expression)
	val, err := vm.RunString(script)
	if err != nil {
		return false, fmt.Errorf("error executing javascript %w", err)
	}
	return val.ToBoolean(), nil
}
