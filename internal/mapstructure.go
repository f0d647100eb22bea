package internal

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// SplitSemicolonsDecodeHookFunc decodes environment strings, splitting values
// by semicolons when the target field is a slice.
var SplitSemicolonsDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(
	splitValueBySemicolonsIfTargetIsSlice,
	mapstructure.TextUnmarshallerHookFunc(),
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToBasicTypeHookFunc(),
	mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
	unboxIfElementSliceHasSingleElement,
)

func unboxIfElementSliceHasSingleElement(from reflect.Value, to reflect.Value) (any, error) {
	// convert single value slice to value
	if from.Kind() == reflect.Slice && from.Len() == 1 {
		toType := to.Type()
		for toType.Kind() == reflect.Ptr {
			toType = toType.Elem()
		}
		if toType.Kind() != reflect.Slice {
			return from.Index(0).Interface(), nil
		}
	}
	return from.Interface(), nil
}

func splitValueBySemicolonsIfTargetIsSlice(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to.Kind() != reflect.Slice {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	if raw == "" {
		return []string{}, nil
	}
	values := strings.Split(raw, ";")
	// drop the empty element left by a trailing semicolon
	result := values[:0]
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result, nil
}
