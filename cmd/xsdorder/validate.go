package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacoelho/schemaset"
)

func newValidateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate --schema <schema.xsd> <document.xml>...",
		Short: "Validate XML documents against a schema",
		Long: `Compiles the schema once, caches the compiled artifact, and validates
every document against it. A malformed document is reported in its own
result and never aborts the batch; a schema that fails to compile aborts
the whole run.`,
		Args: requireArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd, v)
			schemaPath := v.GetString("schema")
			if schemaPath == "" {
				return &exitCodeError{code: 2, err: fmt.Errorf("--schema is required")}
			}

			loadOpts := schemaset.NewLoadOptions().
				WithAllowMissingImportLocations(v.GetBool("allow-missing-import-locations"))
			resolver := schemaset.NewFSResolver(os.DirFS(filepath.Dir(schemaPath)))
			compiler := schemaset.NewCompiler(resolver).WithLoadOptions(loadOpts)
			validator := schemaset.NewValidator(schemaset.NewCache(), compiler.Compile).
				WithValidateOptions(schemaset.NewValidateOptions().WithWorkers(v.GetInt("workers")))

			documents := make([][]byte, len(args))
			for i, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read document %s: %w", path, err)
				}
				documents[i] = content
			}

			logger.Debug("validating batch", "schema", schemaPath, "documents", len(documents), "workers", v.GetInt("workers"))
			results, err := validator.ValidateAllBytes(documents, filepath.Base(schemaPath))
			if err != nil {
				return err
			}

			invalid := 0
			for i, result := range results {
				if result.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "%s validates\n", args[i])
					continue
				}
				invalid++
				fmt.Fprintf(cmd.OutOrStdout(), "%s fails to validate\n", args[i])
				for _, msg := range result.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", msg)
				}
			}
			if invalid > 0 {
				return &exitCodeError{
					code: 1,
					err:  fmt.Errorf("%d of %d documents failed validation", invalid, len(results)),
				}
			}
			return nil
		},
	}

	cmd.Flags().String("schema", "", "path to the schema root (required)")
	cmd.Flags().Int("workers", 0, "parallel validation workers (0 = number of CPUs)")
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(fmt.Sprintf("bind validate flags: %v", err))
	}
	return cmd
}
