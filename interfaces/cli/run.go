package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcparena/arena-go/application"
	domaincfg "github.com/mcparena/arena-go/domain/config"
	infracfg "github.com/mcparena/arena-go/infrastructure/config"
	"github.com/mcparena/arena-go/infrastructure/logging"
)

// runOptions holds options for the run command.
type runOptions struct {
	configPath string
	input      string
	strategy   string
	maxSteps   int
	timeout    time.Duration
	verbose    bool
	jsonOutput bool
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Process an input with a configured agent",
		Long: `Process an input using the agent described by the configuration file.

The agent runs its strategy state machine to completion, calling tools
through the policy gate, and prints the final answer.

Examples:
  # Run with a config file and input as argument
  arena run -c agent.yaml "What is 12 * (3 + 4)?"

  # Run with input from stdin
  echo "Summarize the release notes" | arena run -c agent.yaml

  # Override the configured strategy
  arena run -c agent.yaml --strategy planning "Ship the release"

  # Machine-readable output
  arena run -c agent.yaml --json "What time is it?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.input = args[0]
			}
			return a.runAgent(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "Reasoning strategy (overrides config)")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "Maximum reasoning steps (overrides config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Run timeout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

// runAgent executes one agent run with the given options.
func (a *App) runAgent(ctx context.Context, cmd *cobra.Command, opts *runOptions) error {
	cfg, err := a.loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if opts.strategy != "" {
		cfg.Strategy = opts.strategy
	}
	if opts.maxSteps > 0 {
		cfg.Agent.MaxSteps = opts.maxSteps
	}

	if opts.verbose {
		logging.SetLevel("debug")
	}

	input := opts.input
	if input == "" {
		input = readStdin(cmd)
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("no input specified (pass an argument or pipe stdin)")
	}

	ag, err := application.CreateAgent(*cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to build agent: %w", err)
	}

	if opts.verbose {
		name := cfg.Name
		if name == "" {
			name = "agent"
		}
		_, _ = fmt.Fprintf(a.stdout, "Configuration loaded: %s\n", name)
		_, _ = fmt.Fprintf(a.stdout, "Strategy: %s\n", ag.Strategy())
		_, _ = fmt.Fprintf(a.stdout, "Input: %s\n\n", input)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	result, err := ag.Process(ctx, input)
	if err != nil {
		return fmt.Errorf("agent run failed: %w", err)
	}

	if opts.jsonOutput {
		output := map[string]any{
			"run_id":   result.RunID,
			"strategy": result.Strategy.String(),
			"input":    input,
			"output":   result.Output,
			"duration": result.Duration.String(),
		}
		if len(result.ToolsUsed) > 0 {
			output["tools_used"] = result.ToolsUsed
		}
		if result.Truncated {
			output["truncated"] = true
		}

		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	_, _ = fmt.Fprintln(a.stdout, result.Output)
	if opts.verbose {
		_, _ = fmt.Fprintf(a.stdout, "\nRun ID: %s\n", result.RunID)
		_, _ = fmt.Fprintf(a.stdout, "Duration: %s\n", result.Duration)
		if len(result.ToolsUsed) > 0 {
			_, _ = fmt.Fprintf(a.stdout, "Tools used: %s\n", strings.Join(result.ToolsUsed, ", "))
		}
		if result.Truncated {
			_, _ = fmt.Fprintf(a.stdout, "Truncated: step budget exhausted\n")
		}
	}
	return nil
}

// loadConfig reads the configuration file, falling back to defaults
// when no path is given.
func (a *App) loadConfig(path string) (*domaincfg.AgentConfig, error) {
	if path == "" {
		cfg := domaincfg.Default()
		return &cfg, nil
	}
	cfg, err := infracfg.NewLoader().LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// readStdin collects piped input from the command's input stream.
func readStdin(cmd *cobra.Command) string {
	var b strings.Builder
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(scanner.Text())
	}
	return b.String()
}
