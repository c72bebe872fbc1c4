package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/loader"
	"github.com/aretw0/canopy/internal/report"
)

// errInvalid is returned when at least one document failed, after the report was printed.
var errInvalid = errors.New("some documents are invalid")

var checkCmd = &cobra.Command{
	Use:   "check --schema <schema.yaml> <document>...",
	Short: "Check documents against a schema",
	Long: `Loads a schema description (YAML or JSON) and parses every document with it.
Each invalid field is reported with its path. Exits with status 1 if any
document is invalid or unreadable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		return runCheck(cmd.OutOrStdout(), logger, schemaPath, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("schema", "s", "", "Schema description file")
	_ = checkCmd.MarkFlagRequired("schema")
}

func runCheck(out io.Writer, logger *slog.Logger, schemaPath string, docs []string) error {
	root, err := loader.LoadSchema(schemaPath, canopy.WithLogger(logger))
	if err != nil {
		return err
	}

	printer := report.New(out)
	failed := false
	for _, path := range docs {
		doc, err := loader.LoadDocument(path)
		if err != nil {
			printer.Failed(path, err)
			failed = true
			continue
		}

		if _, errs := root.Parse(doc); len(errs) > 0 {
			printer.Invalid(path, errs)
			failed = true
			continue
		}
		printer.Valid(path)
	}

	logger.Info("check finished", "schema", root.Name, "documents", len(docs), "failed", failed)
	if failed {
		return errInvalid
	}
	return nil
}
