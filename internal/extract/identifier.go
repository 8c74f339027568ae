package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidProjectID is returned when an identifier cell is not an integer.
var ErrInvalidProjectID = errors.New("invalid project identifier")

// ProjectID is a cleaned identifier. The zero value is absent.
type ProjectID struct {
	Value int64
	Valid bool
}

// ValidID returns a present identifier.
func ValidID(v int64) ProjectID {
	return ProjectID{Value: v, Valid: true}
}

// String renders the identifier as a plain integer, or "" when absent.
func (p ProjectID) String() string {
	if !p.Valid {
		return ""
	}
	return strconv.FormatInt(p.Value, 10)
}

// MarshalJSON encodes an absent identifier as null.
func (p ProjectID) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// ParseProjectID coerces a cell value to an integer identifier.
//
// Integers pass through, floats and decimal text are accepted only when they
// hold an integral value ("42", " 42 ", "42.0"). Anything else, including a
// missing cell, is reported as ErrInvalidProjectID.
func ParseProjectID(v any) (ProjectID, error) {
	switch x := v.(type) {
	case nil:
		return ProjectID{}, fmt.Errorf("%w: missing value", ErrInvalidProjectID)
	case int:
		return ValidID(int64(x)), nil
	case int8:
		return ValidID(int64(x)), nil
	case int16:
		return ValidID(int64(x)), nil
	case int32:
		return ValidID(int64(x)), nil
	case int64:
		return ValidID(x), nil
	case uint8:
		return ValidID(int64(x)), nil
	case uint16:
		return ValidID(int64(x)), nil
	case uint32:
		return ValidID(int64(x)), nil
	case uint:
		return fromUnsigned(uint64(x))
	case uint64:
		return fromUnsigned(x)
	case bool:
		if x {
			return ValidID(1), nil
		}
		return ValidID(0), nil
	case float32:
		return fromFloat(float64(x), v)
	case float64:
		return fromFloat(x, v)
	case []byte:
		return parseIDText(string(x))
	case string:
		return parseIDText(x)
	default:
		return ProjectID{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidProjectID, v, v)
	}
}

func fromUnsigned(u uint64) (ProjectID, error) {
	if u > math.MaxInt64 {
		return ProjectID{}, fmt.Errorf("%w: %d out of range", ErrInvalidProjectID, u)
	}
	return ValidID(int64(u)), nil
}

func fromFloat(f float64, orig any) (ProjectID, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return ProjectID{}, fmt.Errorf("%w: %v", ErrInvalidProjectID, orig)
	}
	return ValidID(int64(f)), nil
}

func parseIDText(s string) (ProjectID, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return ValidID(n), nil
	}
	// Spreadsheet exports render whole numbers as "42.0".
	if strings.Contains(trimmed, ".") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return fromFloat(f, s)
		}
	}
	return ProjectID{}, fmt.Errorf("%w: %q", ErrInvalidProjectID, s)
}
