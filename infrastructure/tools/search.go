package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcparena/arena-go/domain/tool"
)

// SearchFunc resolves a query to a list of result snippets.
type SearchFunc func(ctx context.Context, query string) ([]string, error)

type searchInput struct {
	Query string `json:"query"`
}

// NewSearch builds a search tool backed by the given function. Pass a
// stub in tests and a real backend in production wiring.
func NewSearch(search SearchFunc) tool.Tool {
	return tool.NewBuilder("search").
		WithDescription("Searches for information matching a query and returns result snippets.").
		WithInputSchema(tool.ObjectSchema(map[string]json.RawMessage{
			"query": tool.StringProperty("The search query"),
		}, []string{"query"})).
		ReadOnly().
		Idempotent().
		WithRiskLevel(tool.RiskLow).
		WithTags("search").
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in searchInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
			}
			if in.Query == "" {
				return tool.Result{}, fmt.Errorf("%w: empty query", tool.ErrExecutionFailed)
			}

			results, err := search(ctx, in.Query)
			if err != nil {
				return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
			}

			output, err := json.Marshal(results)
			if err != nil {
				return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
			}
			return tool.NewResult(output), nil
		}).
		MustBuild()
}
