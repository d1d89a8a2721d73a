package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"fortimon/pkg/plugin"
)

func newCheckCmd(c *cli) *cobra.Command {
	var discovery bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a JSON array of tasks read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputData, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			if len(inputData) == 0 {
				return nil
			}

			var tasks []plugin.Task
			if err := json.Unmarshal(inputData, &tasks); err != nil {
				return fmt.Errorf("invalid JSON input: %w", err)
			}

			results, err := plugin.Run(cmd.Context(), plugin.DefaultRegistry(), tasks, plugin.Options{
				Discovery:   discovery,
				Concurrency: c.conf.WorkerConcurrency,
				Defaults:    c.conf.EvaluationDefaults(),
			})
			if err != nil {
				return err
			}

			slog.Debug("Batch finished", "component", "CLI", "tasks", len(tasks), "discovery", discovery)
			return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
		},
	}

	cmd.Flags().BoolVar(&discovery, "discovery", false, "run discovery instead of checks")
	return cmd
}
