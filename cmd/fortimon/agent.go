package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fortimon/pkg/agent"
	"fortimon/pkg/models"
	"fortimon/pkg/plugin"
)

func newAgentArgsCmd(c *cli) *cobra.Command {
	var host models.HostConfig

	cmd := &cobra.Command{
		Use:   "agent-args",
		Short: "Print the special-agent command line for a rule read from stdin",
		Long: `Reads a special-agent rule (api_key, critical_on_branch_change, port,
timeout) as JSON from stdin and prints the agent arguments, one per line.
An encrypted api_key is decrypted with FORTIMON_SECRET when it is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			params, err := agent.ParseParams(raw)
			if err != nil {
				return err
			}
			params, err = plugin.DecryptAPIKey(params, c.conf.EncryptionKey)
			if err != nil {
				return err
			}

			args, err := agent.Arguments(params, host)
			if err != nil {
				return err
			}
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), arg)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host.Name, "host", "", "host name as known to the monitoring platform")
	cmd.Flags().StringVar(&host.Address, "address", "", "host address; preferred over --host when set")
	return cmd
}

var errNoSecret = errors.New("FORTIMON_SECRET is not configured")

func newEncryptKeyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt-key",
		Short: "Encrypt the api_key of a special-agent rule read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.conf.EncryptionKey == "" {
				return errNoSecret
			}

			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			params, err := agent.ParseParams(raw)
			if err != nil {
				return err
			}
			if err := params.Validate(); err != nil {
				return err
			}

			sealed, err := plugin.EncryptAPIKey(params, c.conf.EncryptionKey)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(sealed)
		},
	}
}
