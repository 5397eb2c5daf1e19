package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/ytimocin/dapr-sdk-go/pkg/daprconfig"
	"github.com/ytimocin/dapr-sdk-go/pkg/property"
	"github.com/ytimocin/dapr-sdk-go/pkg/sysprop"
)

const redacted = "********"

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "daprprops",
		Short:         "Inspect how Dapr SDK configuration properties resolve",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd.ErrOrStderr(), cmd.Flags().Changed)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.flags.ConfigFile, "config", "c", "", "YAML settings file")
	f.StringArrayVarP(&a.flags.Files, "file", "f", nil, "YAML or TOML property file (repeatable)")
	f.StringArrayVarP(&a.flags.Defines, "define", "D", nil, "process property as name=value (repeatable)")
	f.StringArrayVarP(&a.flags.Overrides, "override", "o", nil, "override as name=value (repeatable)")
	f.BoolVar(&a.flags.Debug, "debug", false, "enable debug logging")
	f.BoolVar(&a.flags.JSON, "json", false, "print JSON")
	f.BoolVar(&a.flags.LogJSON, "log-json", false, "write logs as JSON lines")
	f.BoolVar(&a.flags.NoColor, "no-color", false, "disable colors in console logs")
	f.StringVar(&a.flags.Secrets.File.SecretsDir, "secrets-dir", "", "directory served by ${file:...} references")
	f.StringVar(&a.flags.Secrets.Vault.Address, "vault-address", "", "Vault address")
	f.StringVar(&a.flags.Secrets.Vault.Token, "vault-token", "", "Vault token")
	f.StringVar(&a.flags.Secrets.Vault.Path, "vault-path", "", "Vault secret path served by ${vault:...}")
	f.StringVar(&a.flags.Secrets.Vault.Namespace, "vault-namespace", "", "Vault namespace")
	f.StringVar(&a.flags.Secrets.AWS.Region, "aws-region", "", "AWS region")
	f.StringVar(&a.flags.Secrets.AWS.SecretName, "aws-secret", "", "AWS secret served by ${aws:...}")
	f.StringVar(&a.flags.Secrets.AWS.Endpoint, "aws-endpoint", "", "AWS Secrets Manager endpoint override")

	root.AddCommand(
		a.listCommand(),
		a.getCommand(),
		a.propertiesCommand(),
		versionCommand(),
	)
	return root
}

func (a *app) listCommand() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every known property with its value and source tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := a.props.InspectAll()
			if !showSecrets {
				for i := range rows {
					rows[i] = redact(rows[i])
				}
			}
			if a.settings.JSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return writeTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print secret values in clear")
	return cmd
}

func (a *app) getCommand() *cobra.Command {
	var (
		override    string
		showSecrets bool
	)

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the effective value of one property, by property or environment name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prop, ok := daprconfig.Lookup(args[0])
			if !ok {
				return errors.Errorf("unknown property %q", args[0])
			}

			row := a.props.Inspect(prop)
			if override != "" {
				row = prop.Inspect(property.ProcessSource{Store: a.store}, override)
			}
			if !showSecrets {
				row = redact(row)
			}

			if a.settings.JSON {
				return writeJSON(cmd.OutOrStdout(), row)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), row.Value)
			return err
		},
	}
	cmd.Flags().StringVar(&override, "value", "", "resolve as if this override were given")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print secret values in clear")
	return cmd
}

func (a *app) propertiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "properties",
		Short: "Print the loaded process properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := a.store.Snapshot()
			if a.settings.JSON {
				return writeJSON(cmd.OutOrStdout(), values)
			}
			_, err := io.WriteString(cmd.OutOrStdout(), sysprop.Format(values))
			return err
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daprprops %s\n", version)
		},
	}
}

func redact(row property.Inspection) property.Inspection {
	if strings.Contains(strings.ToLower(row.Name), "token") && row.Value != "" {
		row.Value = redacted
	}
	return row
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, rows []property.Inspection) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tENV\tVALUE\tTIER")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.EnvName, r.Value, r.Tier)
	}
	return tw.Flush()
}
