package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcparena/arena-go/domain/tool"
)

type clockInput struct {
	Format   string `json:"format,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// NewClock builds a tool that reports the current time. The clock
// source is injectable for testing.
func NewClock() tool.Tool {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource builds a clock tool with a custom time source.
func NewClockWithSource(now func() time.Time) tool.Tool {
	return tool.NewBuilder("clock").
		WithDescription("Returns the current date and time, optionally in a given timezone and layout.").
		WithInputSchema(tool.ObjectSchema(map[string]json.RawMessage{
			"format":   tool.StringProperty("Go time layout, defaults to RFC 3339"),
			"timezone": tool.StringProperty("IANA timezone name, e.g. \"Europe/Berlin\", defaults to UTC"),
		}, nil)).
		ReadOnly().
		WithRiskLevel(tool.RiskNone).
		WithTags("time").
		WithHandler(func(_ context.Context, input json.RawMessage) (tool.Result, error) {
			var in clockInput
			if len(input) > 0 {
				if err := json.Unmarshal(input, &in); err != nil {
					return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
				}
			}

			loc := time.UTC
			if in.Timezone != "" {
				var err error
				loc, err = time.LoadLocation(in.Timezone)
				if err != nil {
					return tool.Result{}, fmt.Errorf("%w: unknown timezone %q", tool.ErrExecutionFailed, in.Timezone)
				}
			}

			layout := time.RFC3339
			if in.Format != "" {
				layout = in.Format
			}

			return tool.TextResult(now().In(loc).Format(layout)), nil
		}).
		MustBuild()
}
