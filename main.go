// =============================================================================
// Profit Calculator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the profitcalc CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   profitcalc init         - Start a sheet with one default row
//   profitcalc add          - Add a row
//   profitcalc list         - Show rows and total profit
//   profitcalc export       - Write the sheet to json/yaml/xlsx/csv/xml
//   profitcalc import       - Replace the sheet from a file
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Row model, calculation engine, sheet, codecs, session
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/profit-calculator/cmd"
)

func main() {
	cmd.Execute()
}
