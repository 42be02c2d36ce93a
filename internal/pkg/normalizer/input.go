package normalizer

import (
	"fmt"
	"reflect"
	"time"
)

var (
	timeType         = reflect.TypeOf(time.Time{})
	calendarTimeType = reflect.TypeOf((*CalendarTime)(nil)).Elem()
)

// CalendarTime is the read-only view every calendar-time value offers.
// time.Time satisfies it; as a denormalization target it yields a time.Time.
type CalendarTime interface {
	Format(layout string) string
	Location() *time.Location
	UnixNano() int64
}

// numberText is a number kept in its textual form, such as json.Number
type numberText interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// input is the closed set of shapes Denormalize accepts
type input interface {
	isInput()
}

type timeInput struct {
	value time.Time
}

type numberInput struct {
	integer int64
	float   float64
	isFloat bool
}

// recordInput is a map that carries a "date" key
type recordInput struct {
	date        any
	timezone    any
	hasTimezone bool
}

type stringInput struct {
	value string
}

type unknownInput struct{}

func (timeInput) isInput()    {}
func (numberInput) isInput()  {}
func (recordInput) isInput()  {}
func (stringInput) isInput()  {}
func (unknownInput) isInput() {}

func classify(data any) input {
	if t, ok := asTime(data); ok {
		return timeInput{value: t}
	}

	switch v := data.(type) {
	case string:
		return stringInput{value: v}
	case int, int8, int16, int32, int64:
		return numberInput{integer: reflect.ValueOf(v).Int()}
	case uint, uint8, uint16, uint32, uint64:
		return numberInput{integer: int64(reflect.ValueOf(v).Uint())}
	case float32, float64:
		return numberInput{float: reflect.ValueOf(v).Float(), isFloat: true}
	case numberText:
		if i, err := v.Int64(); err == nil {
			return numberInput{integer: i}
		}
		if f, err := v.Float64(); err == nil {
			return numberInput{float: f, isFloat: true}
		}
	case map[string]any:
		return classifyRecord(v)
	case Row:
		return classifyRecord(v)
	case map[string]string:
		record := make(map[string]any, len(v))
		for k, s := range v {
			record[k] = s
		}
		return classifyRecord(record)
	}
	return unknownInput{}
}

func classifyRecord(m map[string]any) input {
	date, ok := m["date"]
	if !ok {
		return unknownInput{}
	}
	tz, hasTimezone := m["timezone"]
	return recordInput{date: date, timezone: tz, hasTimezone: hasTimezone}
}

// text renders the number as a timestamp string for the epoch layouts.
// Any other layout leaves the number unusable.
func (n numberInput) text(layout string) (string, bool) {
	switch layout {
	case FormatUnix:
		if n.isFloat {
			return fmt.Sprintf("%d", int64(n.float)), true
		}
		return fmt.Sprintf("%d", n.integer), true
	case FormatUnixMicro:
		if n.isFloat {
			return fmt.Sprintf("%.6f", n.float), true
		}
		return fmt.Sprintf("%.6f", float64(n.integer)), true
	}
	return "", false
}

// asTime extracts the instant from any calendar-time value
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case nil:
		return time.Time{}, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return time.Time{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct && rv.Type().ConvertibleTo(timeType) {
		return rv.Convert(timeType).Interface().(time.Time), true
	}

	if ct, ok := v.(CalendarTime); ok {
		return time.Unix(0, ct.UnixNano()).In(ct.Location()), true
	}
	return time.Time{}, false
}

// isTimeTarget reports whether values of type t can be built from a time.Time
func isTimeTarget(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t == calendarTimeType {
		return true
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t.ConvertibleTo(timeType)
}

// toTarget returns t as the requested type. Pointer targets get a fresh
// pointer; every other target gets a value.
func toTarget(t time.Time, target reflect.Type) any {
	if target == nil || target == timeType || target == calendarTimeType {
		return t
	}
	if target.Kind() == reflect.Pointer {
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(reflect.ValueOf(t).Convert(target.Elem()))
		return ptr.Interface()
	}
	return reflect.ValueOf(t).Convert(target).Interface()
}
