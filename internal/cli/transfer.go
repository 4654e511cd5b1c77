package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/internal/transfer"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// importReport is the JSON form of an import.
type importReport struct {
	File      string   `json:"file"`
	Separator string   `json:"separator"`
	Encoding  string   `json:"encoding"`
	Imported  int      `json:"imported"`
	Rejected  []string `json:"rejected,omitempty"`
	Ignored   []string `json:"ignoredColumns,omitempty"`
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <entity> <file.csv>",
		Short: "Import records from a CSV file",
		Long: "Import records from a CSV file. The separator and text encoding are\n" +
			"detected. The header row names fields by ID or label; unknown columns are\n" +
			"ignored. Rows that fail validation are reported and skipped.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return userError(fmt.Errorf("read %s: %w", args[1], err))
			}
			var rep importReport
			return editDirectory(cmd, args[0], func(ctx context.Context, d *directory.Directory) error {
				parsed, err := transfer.ParseCSV(data, d.Fields(), d.Users())
				if err != nil {
					return err
				}
				res, err := d.ImportRecords(ctx, parsed.Rows)
				if err != nil {
					return sysError(err)
				}
				rep = importReport{
					File:      args[1],
					Separator: parsed.Separator,
					Encoding:  parsed.Encoding,
					Imported:  res.Imported,
					Ignored:   parsed.Ignored,
				}
				for _, re := range res.Rejected {
					rep.Rejected = append(rep.Rejected, fmt.Sprintf("line %d: %v", parsed.Lines[re.Row-1], re.Err))
				}
				return nil
			}, func(d *directory.Directory) error {
				return printValue(cmd, rep, func() error {
					return printImport(cmd.OutOrStdout(), d.Entity(), rep)
				})
			})
		},
	}
}

func printImport(w io.Writer, entity types.EntityKey, rep importReport) error {
	fmt.Fprintf(w, "imported %s %s from %s\n", humanize.Comma(int64(rep.Imported)), entity.Plural(), rep.File)
	if len(rep.Ignored) > 0 {
		fmt.Fprintf(w, "ignored columns: %v\n", rep.Ignored)
	}
	if len(rep.Rejected) > 0 {
		fmt.Fprintf(w, "skipped %d rows:\n", len(rep.Rejected))
		for _, r := range rep.Rejected {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	var (
		all      bool
		selected bool
	)
	cmd := &cobra.Command{
		Use:   "export <entity> <file.csv|->",
		Short: "Export records as CSV",
		Long: "Export the rows matching the current search and filters, in the current\n" +
			"sort order, with the visible columns. --all exports every record and\n" +
			"--selected only the selected ones. \"-\" writes to standard output.",
		Example: `  rolodex export leads leads.csv
  rolodex export deals - --selected`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && selected {
				return userError(fmt.Errorf("--all and --selected are mutually exclusive"))
			}
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				d, err := e.directory(ctx, args[0])
				if err != nil {
					return err
				}
				rows := exportRows(d, all, selected)
				if args[1] == "-" {
					return transfer.WriteCSV(cmd.OutOrStdout(), d.Table().EffectiveColumns(), rows)
				}
				f, err := os.Create(args[1])
				if err != nil {
					return userError(fmt.Errorf("create %s: %w", args[1], err))
				}
				if err := transfer.WriteCSV(f, d.Table().EffectiveColumns(), rows); err != nil {
					f.Close()
					return sysError(err)
				}
				if err := f.Close(); err != nil {
					return sysError(err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %s %s to %s\n", humanize.Comma(int64(len(rows))), d.Entity().Plural(), args[1])
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "export every record, ignoring search and filters")
	cmd.Flags().BoolVar(&selected, "selected", false, "export only the selected records")
	return cmd
}

func exportRows(d *directory.Directory, all, selected bool) []types.Record {
	tv := d.Table()
	switch {
	case all:
		return d.Records()
	case selected:
		var out []types.Record
		for _, r := range tv.Matching() {
			if tv.Selection().Has(tv.RowID(r)) {
				out = append(out, r)
			}
		}
		return out
	}
	return tv.Matching()
}
