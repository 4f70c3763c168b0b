package validation

import "github.com/go-playground/validator/v10"

const (
	maxStepFields = 50
	maxStepDepth  = 3
	maxStepString = 500
)

// validateStepData accepts a non-empty JSON object of primitives, short
// arrays and shallow nested objects, as posted by a funnel page.
func validateStepData(fl validator.FieldLevel) bool {
	m, ok := fl.Field().Interface().(map[string]any)
	if !ok || len(m) == 0 || len(m) > maxStepFields {
		return false
	}
	return validateMapContent(m, 1)
}

func validateMapContent(m map[string]any, depth int) bool {
	if depth > maxStepDepth {
		return false
	}
	for k, v := range m {
		if k == "" {
			return false
		}
		if !validateElement(v, depth) {
			return false
		}
	}
	return true
}

func validateElement(elem any, depth int) bool {
	switch val := elem.(type) {
	case string:
		return len(val) <= maxStepString
	case float64:
		return val >= 0
	case bool, nil:
		return true
	case []any:
		if len(val) > maxStepFields {
			return false
		}
		for _, e := range val {
			if !validateElement(e, depth+1) {
				return false
			}
		}
		return true
	case map[string]any:
		return validateMapContent(val, depth+1)
	default:
		return false
	}
}
