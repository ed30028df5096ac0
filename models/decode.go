package models

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies attrs into the struct pointed to by target, matching keys
// against `json` tags. Nested structs, slices and maps are decoded
// recursively and RFC 3339 strings are converted into time.Time.
//
// Generated models implement Hydrate with a single call:
//
//	func (p *Pet) Hydrate(attrs map[string]any) error {
//		return models.Decode(attrs, p)
//	}
func Decode(attrs map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(attrs)
}

// timeHook converts ISO-8601 strings into time.Time, accepting the layouts
// servers commonly emit in addition to RFC 3339.
func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	return ParseTime(reflect.ValueOf(data).String())
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 timestamp
func ParseTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
