// Command xsdorder resolves schema dependency load orders and batch-validates
// XML documents against a cached compiled schema.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "XSDORDER"

// exitCodeError carries an explicit process exit code through cobra.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e == nil || e.err == nil {
		return "exit"
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

func exitCode(err error) int {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece.code
	}
	return 1
}

func writeError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "xsdorder",
		Short: "Schema dependency resolution and batch XML validation",
		Long: `xsdorder resolves the import/include dependency graph of XML Schema
documents into a load order, and batch-validates XML documents against a
compiled schema that is cached across the whole batch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitCodeError{code: 2, err: err}
	})

	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentFlags().Bool("allow-missing-import-locations", false, "skip imports without a schemaLocation")
	if err := v.BindPFlags(root.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("bind persistent flags: %v", err))
	}

	root.AddCommand(newOrderCmd(v))
	root.AddCommand(newValidateCmd(v))
	return root
}

func newLogger(cmd *cobra.Command, v *viper.Viper) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: false,
		Prefix:          "xsdorder",
	})
	if v.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// requireArgs wraps a cobra args validator so violations exit with the
// usage code.
func requireArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &exitCodeError{code: 2, err: err}
		}
		return nil
	}
}
