package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind discriminates the payload value union.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
	KindPoint
)

// Point is a coordinate pair used by curve-style payloads.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Value is one element of an OpenADR3 values array: a number, string,
// boolean, or point. The zero Value is the number 0.
type Value struct {
	kind  ValueKind
	num   float64
	str   string
	b     bool
	point Point
}

// NumberValue returns a numeric value.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// PointValue returns a point value.
func PointValue(x, y float64) Value {
	return Value{kind: KindPoint, point: Point{X: x, Y: y}}
}

// ValueOf converts a dynamically typed value, as produced by row and
// record converters, into a Value.
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case float64:
		return NumberValue(v), nil
	case float32:
		return NumberValue(float64(v)), nil
	case int:
		return NumberValue(float64(v)), nil
	case int64:
		return NumberValue(float64(v)), nil
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case Point:
		return PointValue(v.X, v.Y), nil
	default:
		return Value{}, fmt.Errorf("unsupported payload value type %T", x)
	}
}

// Kind returns the discriminator of the union.
func (v Value) Kind() ValueKind { return v.kind }

// Number returns the numeric representation, valid when Kind is KindNumber.
func (v Value) Number() float64 { return v.num }

// Text returns the string representation, valid when Kind is KindString.
func (v Value) Text() string { return v.str }

// Bool returns the boolean representation, valid when Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Point returns the point representation, valid when Kind is KindPoint.
func (v Value) Point() Point { return v.point }

// Equal reports whether two values are the same kind and content.
func (v Value) Equal(o Value) bool {
	return v == o
}

// String renders the value for display and tabular output.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindPoint:
		return fmt.Sprintf("%g:%g", v.point.X, v.point.Y)
	default:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindBool:
		return json.Marshal(v.b)
	case KindPoint:
		return json.Marshal(v.point)
	default:
		return json.Marshal(v.num)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = NumberValue(t)
	case string:
		*v = StringValue(t)
	case bool:
		*v = BoolValue(t)
	case map[string]any:
		var p Point
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode point value: %w", err)
		}
		*v = PointValue(p.X, p.Y)
	default:
		return fmt.Errorf("unsupported payload value %s", string(data))
	}
	return nil
}
