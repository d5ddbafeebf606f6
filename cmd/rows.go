// =============================================================================
// Profit Calculator - Row Commands
// =============================================================================
//
// This file defines the commands that edit the sheet:
//
// COMMAND USAGE:
//   profitcalc init [--force]
//   profitcalc add [--name N] [--quantity Q] [--cost C] [--discount D]
//                  [--gst G] [--expense E] [--selling-price S]
//   profitcalc set <id> <field> <value>
//   profitcalc delete <id>
//
// Every command loads the state file, applies one edit and saves it back.
// Typed values pass through the input sanitizer before they reach the sheet.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/profit-calculator/internal/input"
	"github.com/ginjaninja78/profit-calculator/internal/row"
	"github.com/ginjaninja78/profit-calculator/internal/session"
	"github.com/ginjaninja78/profit-calculator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// force lets init overwrite an existing state file.
var force bool

// addFlags maps the add command's flag names to raw fields.
var addFlags = []struct {
	name  string
	field row.Field
	usage string
}{
	{"name", row.FieldItemName, "Item name"},
	{"quantity", row.FieldQuantity, "Quantity in metres"},
	{"cost", row.FieldCost, "Cost per metre"},
	{"discount", row.FieldDiscount, "Discount fraction (0.02 = 2%)"},
	{"gst", row.FieldGST, "GST fraction (0.18 = 18%)"},
	{"expense", row.FieldExpense, "Fixed expense"},
	{"selling-price", row.FieldSellingPrice, "Selling price including GST"},
}

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a state file holding one default row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.FileExists(stateFile) && !force {
			return fmt.Errorf("state file %s already exists (use --force to overwrite)", stateFile)
		}
		return runInit(cmd.OutOrStdout(), session.New(stateFile, appConfig, logger))
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a row",
	Long: `Add a row to the sheet. Unset values come from the configured defaults;
when the sheet already has rows, discount, GST and expense are taken from the
first row instead. Flags given on the command line always win.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make(map[row.Field]string)
		for _, f := range addFlags {
			if cmd.Flags().Changed(f.name) {
				v, _ := cmd.Flags().GetString(f.name)
				values[f.field] = v
			}
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		return runAdd(cmd.OutOrStdout(), s, values)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <id> <field> <value>",
	Short: "Edit a raw field of a row",
	Long: `Edit one raw field of the row with the given identifier and recompute it.

Raw fields: itemName, quantity, cost, discount, gst, expense, sellingPrice.
Numeric input keeps only digits, the decimal point and the minus sign.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return runSet(cmd.OutOrStdout(), s, args[0], args[1], args[2])
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a row",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return runDelete(cmd.OutOrStdout(), s, args[0])
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(initCmd, addCmd, setCmd, deleteCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing state file")

	for _, f := range addFlags {
		addCmd.Flags().String(f.name, "", f.usage)
	}
}

// =============================================================================
// COMMAND FUNCTIONS
// =============================================================================

func runInit(out io.Writer, s *session.Session) error {
	r := s.Sheet.Add(row.Overrides{})
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s\n", s.Path())
	fmt.Fprintf(out, "Added row %s (%s)\n", r.ID, r.ItemName)
	return nil
}

// runAdd adds a row built from the given raw values.
func runAdd(out io.Writer, s *session.Session, values map[row.Field]string) error {
	var o row.Overrides
	for f, v := range values {
		clean, err := input.Field(f, v)
		if err != nil {
			return err
		}
		if err := setOverride(&o, f, clean); err != nil {
			return err
		}
	}

	r := s.Sheet.Add(o)
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Added row %s (%s), profit %s\n", r.ID, r.ItemName, r.Profit)
	return nil
}

// runSet edits one raw field of a row.
func runSet(out io.Writer, s *session.Session, id, name, value string) error {
	f, err := row.ParseField(name)
	if err != nil {
		return err
	}
	if !f.IsRaw() {
		return fmt.Errorf("%w: %s", row.ErrReadOnlyField, f)
	}

	clean, err := input.Field(f, value)
	if err != nil {
		return err
	}

	r, err := s.Sheet.Update(id, f, clean)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Updated %s of %s to %q, profit %s\n", f, r.ID, clean, r.Profit)
	return nil
}

func runDelete(out io.Writer, s *session.Session, id string) error {
	if err := s.Sheet.Delete(id); err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted row %s (%d remaining)\n", id, s.Sheet.Len())
	return nil
}

// setOverride points the override slot for f at value.
func setOverride(o *row.Overrides, f row.Field, value string) error {
	switch f {
	case row.FieldItemName:
		o.ItemName = &value
	case row.FieldQuantity:
		o.Quantity = &value
	case row.FieldCost:
		o.Cost = &value
	case row.FieldDiscount:
		o.Discount = &value
	case row.FieldGST:
		o.GST = &value
	case row.FieldExpense:
		o.Expense = &value
	case row.FieldSellingPrice:
		o.SellingPrice = &value
	default:
		return fmt.Errorf("%w: %s", row.ErrReadOnlyField, f)
	}
	return nil
}
