package bot

import (
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// Nil-safe readers over the intent parameter struct. Absent fields yield
// zero values; callers default or validate, never assume presence.

func stringField(params *structpb.Struct, key string) string {
	return params.GetFields()[key].GetStringValue()
}

func structField(params *structpb.Struct, key string) *structpb.Struct {
	return params.GetFields()[key].GetStructValue()
}

func listField(params *structpb.Struct, key string) []*structpb.Value {
	return params.GetFields()[key].GetListValue().GetValues()
}

// datePart returns the calendar-date portion of a combined date-time string.
func datePart(value string) string {
	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		return value[:idx]
	}
	return value
}

// timePart returns the time-of-day portion of a combined date-time string.
func timePart(value string) string {
	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		return value[idx+1:]
	}
	return value
}
