// =============================================================================
// Profit Calculator - Reporting and Transfer Commands
// =============================================================================
//
// COMMAND USAGE:
//   profitcalc list [-s...]       Render the sheet and its total
//   profitcalc total              Print the aggregate profit
//   profitcalc export [--out F]   Write the sheet as json/yaml/xlsx/csv/xml
//   profitcalc import <file>      Replace the sheet with a document's rows
//
// SORTING:
//   The list view starts in storage order. Each -s advances the sort toggle
//   once: -s is highest profit first, -ss is lowest first, -sss is back to
//   storage order. Sorting never changes the state file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/profit-calculator/internal/calc"
	"github.com/ginjaninja78/profit-calculator/internal/row"
	"github.com/ginjaninja78/profit-calculator/internal/session"
	"github.com/ginjaninja78/profit-calculator/internal/sheet"
	"github.com/ginjaninja78/profit-calculator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// sortToggles counts how many times -s was given.
var sortToggles int

// exportPath is the destination of an export.
var exportPath string

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every row and the total profit",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return runList(cmd.OutOrStdout(), s, directionAfter(sortToggles))
	},
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print the total profit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Sheet.TotalProfit().StringFixed(calc.MoneyPlaces))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the sheet to a file",
	Long: `Export the sheet. The format follows the file extension: .json (default),
.yaml/.yml, .xlsx, .csv or .xml. Without --out the configured export file name is
used; it may contain {date}, {time}, {timestamp} and {uuid} placeholders.

An empty sheet is not exported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		path := exportPath
		if path == "" {
			path = utils.GenerateOutputFileName(appConfig.ExportFileName, nil)
		}
		return runExport(cmd.OutOrStdout(), s, path)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the sheet with the rows of a file",
	Long: `Import a document previously produced by export (json, yaml, xlsx, csv or xml).

The document must be a list of records whose first record has an itemName.
A rejected document leaves the sheet untouched. On success the previous state
file is kept alongside it with a .bak suffix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return runImport(cmd.OutOrStdout(), s, args[0])
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(listCmd, totalCmd, exportCmd, importCmd)

	listCmd.Flags().CountVarP(
		&sortToggles,
		"sort",
		"s",
		"Advance the profit sort toggle (repeat to cycle)",
	)

	exportCmd.Flags().StringVarP(
		&exportPath,
		"out",
		"o",
		"",
		"Destination file (default from configuration)",
	)
}

// =============================================================================
// COMMAND FUNCTIONS
// =============================================================================

// directionAfter returns the sort direction reached by toggling n times
// from None.
func directionAfter(n int) sheet.Direction {
	dir := sheet.None
	for i := 0; i < n; i++ {
		dir = dir.Toggle()
	}
	return dir
}

// runList renders the sheet as a tab-aligned table followed by the total.
func runList(out io.Writer, s *session.Session, dir sheet.Direction) error {
	rows := s.Sheet.View(dir)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No rows. Use 'profitcalc add' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := make([]string, len(row.AllFields))
	for i, f := range row.AllFields {
		header[i] = string(f)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r.Record(), "\t"))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if dir != sheet.None {
		fmt.Fprintf(out, "Sorted by profit: %s\n", dir)
	}
	fmt.Fprintf(out, "Total profit: %s\n", s.Sheet.TotalProfit().StringFixed(calc.MoneyPlaces))
	return nil
}

func runExport(out io.Writer, s *session.Session, path string) error {
	result, err := s.Export(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported %d row(s) to %s (%s)\n", result.Rows, result.Path, result.Format)
	return nil
}

func runImport(out io.Writer, s *session.Session, path string) error {
	result, err := s.Import(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d row(s) from %s\n", result.Rows, result.Path)
	if result.Backup != "" {
		fmt.Fprintf(out, "Previous state saved to %s\n", result.Backup)
	}
	return nil
}
