package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacoelho/schemaset"
	sserrors "github.com/jacoelho/schemaset/errors"
)

func newOrderCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "order <schema.xsd>...",
		Short: "Print the dependency load order for schema roots",
		Long: `Resolves the transitive import/include closure of the given schema roots
and prints one schema identifier per line, dependencies first. A dependency
cycle is fatal and reports the full cycle path.`,
		Args: requireArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd, v)
			opts := schemaset.NewLoadOptions().
				WithAllowMissingImportLocations(v.GetBool("allow-missing-import-locations"))

			set := schemaset.NewSchemaSet().WithLoadOptions(opts)
			for _, root := range args {
				dir := filepath.Dir(root)
				base := filepath.Base(root)
				logger.Debug("adding schema root", "dir", dir, "schema", base)
				if err := set.AddFS(os.DirFS(dir), base); err != nil {
					return fmt.Errorf("add schema root %s: %w", root, err)
				}
			}

			res, err := set.Resolve()
			if err != nil {
				if cycle, ok := sserrors.AsCycle(err); ok {
					logger.Error("dependency cycle", "path", cycle.Cycle)
				}
				return err
			}

			logger.Debug("resolved schema set", "schemas", len(res.Order))
			for _, id := range res.Order {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
