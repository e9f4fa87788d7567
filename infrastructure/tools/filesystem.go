package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcparena/arena-go/domain/tool"
)

const maxFileBytes = 1 << 20 // 1MB read cap

type filesystemInput struct {
	Operation string `json:"operation"` // "read" or "list"
	Path      string `json:"path"`
}

// NewFilesystem builds a read-only filesystem tool confined to root.
// Paths that escape the root are rejected.
func NewFilesystem(root string) tool.Tool {
	return tool.NewBuilder("filesystem").
		WithDescription("Reads a file or lists a directory under the configured root. Read-only.").
		WithInputSchema(tool.ObjectSchema(map[string]json.RawMessage{
			"operation": tool.StringProperty("\"read\" to read a file, \"list\" to list a directory"),
			"path":      tool.StringProperty("Path relative to the tool's root directory"),
		}, []string{"operation", "path"})).
		ReadOnly().
		Idempotent().
		WithRiskLevel(tool.RiskLow).
		WithTags("filesystem").
		WithHandler(func(_ context.Context, input json.RawMessage) (tool.Result, error) {
			var in filesystemInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
			}

			resolved, err := resolveWithin(root, in.Path)
			if err != nil {
				return tool.Result{}, err
			}

			switch in.Operation {
			case "read":
				return readFile(resolved)
			case "list":
				return listDir(resolved)
			default:
				return tool.Result{}, fmt.Errorf("%w: unknown operation %q", tool.ErrExecutionFailed, in.Operation)
			}
		}).
		MustBuild()
}

// resolveWithin joins path onto root and rejects escapes.
func resolveWithin(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
	}

	resolved := filepath.Clean(filepath.Join(absRoot, path))
	if resolved != absRoot && !strings.HasPrefix(resolved, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes the root directory", tool.ErrExecutionFailed, path)
	}
	return resolved, nil
}

func readFile(path string) (tool.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
	}
	if info.IsDir() {
		return tool.Result{}, fmt.Errorf("%w: %q is a directory", tool.ErrExecutionFailed, path)
	}
	if info.Size() > maxFileBytes {
		return tool.Result{}, fmt.Errorf("%w: file exceeds %d bytes", tool.ErrExecutionFailed, maxFileBytes)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path confined by resolveWithin
	if err != nil {
		return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
	}
	return tool.TextResult(string(data)), nil
}

func listDir(path string) (tool.Result, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}

	output, err := json.Marshal(names)
	if err != nil {
		return tool.Result{}, fmt.Errorf("%w: %w", tool.ErrExecutionFailed, err)
	}
	return tool.NewResult(output), nil
}
