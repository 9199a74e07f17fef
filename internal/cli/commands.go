package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yacchi/kasane"
)

// ErrNoMatch is returned by the query command when nothing matches.
var ErrNoMatch = errors.New("no value matches the expression")

func newShowCommand(opts *globalOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Example: `  kasane show
  kasane show --format json --env production`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, opts)
			if err != nil {
				return err
			}
			out, err := store.Encode(outputFormat)
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), string(out))
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format (yaml, json)")
	return cmd
}

func newQueryCommand(opts *globalOptions) *cobra.Command {
	var engine string

	cmd := &cobra.Command{
		Use:   "query EXPRESSION",
		Short: "Evaluate an expression against the merged configuration",
		Example: `  kasane query server.port
  kasane query '$.servers[?(@.weight > 5)].name'
  kasane query --engine expr 'server.port > 8000'
  kasane query --engine pointer /servers/0/name`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluator, err := evaluatorFor(engine)
			if err != nil {
				return err
			}
			store, err := loadStore(cmd, opts, kasane.WithEvaluator(evaluator))
			if err != nil {
				return err
			}

			v, err := store.Query(args[0])
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("%w: %s", ErrNoMatch, args[0])
			}
			return writeValue(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "jsonpath", "Query engine (jsonpath, expr, pointer)")
	return cmd
}

func newSaveCommand(opts *globalOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the merged configuration to <dir>/<environment>.<ext>",
		Example: `  kasane save
  kasane save --format json --env staging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, opts)
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), outputFormat); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s configuration (%s) to %s\n",
				store.Environment(), strings.ToLower(outputFormat), store.Root())
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format (yaml, json)")
	return cmd
}

func newEnvCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the active environment name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cmd, opts)
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), store.Environment())
		},
	}
}

func newLayersCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "List the files merged into the configuration, in merge order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd, opts)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PRIORITY\tFORMAT\tFILE")
			for _, info := range store.Layers() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Priority, info.Format, info.Name)
			}
			return tw.Flush()
		},
	}
}

func writeLine(w io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

// writeValue prints strings as-is and everything else as JSON.
func writeValue(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		return writeLine(w, s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeLine(w, string(b))
}
