package tools

import (
	"context"

	"github.com/mcparena/arena-go/domain/tool"
)

// DefaultSet returns the builtin tools in their canonical registration
// order. The search tool answers from local episodic content only until
// a real backend is wired in.
func DefaultSet(filesystemRoot string) []tool.Tool {
	return []tool.Tool{
		NewCalculator(),
		NewClock(),
		NewFilesystem(filesystemRoot),
		NewSearch(func(_ context.Context, query string) ([]string, error) {
			return []string{"no search backend configured for query: " + query}, nil
		}),
	}
}
