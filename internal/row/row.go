// =============================================================================
// Profit Calculator - Row Model
// =============================================================================
//
// This package defines the shape of one priceable item (a "row" of the
// sheet) and the defaults used when a new row is created.
//
// FIELDS:
//   Every field is stored as decimal-formatted text, exactly as the user typed
//   it (raw fields) or as the calculation engine rendered it (derived fields).
//
//   | Wire name              | Kind    | Meaning                               |
//   |------------------------|---------|---------------------------------------|
//   | id                     | key     | Opaque identifier, never reused       |
//   | itemName               | raw     | Free text                             |
//   | quantity               | raw     | Units bought                          |
//   | cost                   | raw     | Unit cost                             |
//   | discount               | raw     | Discount fraction (0.02 = 2%)         |
//   | gst                    | raw     | GST fraction (0.18 = 18%)             |
//   | expense                | raw     | Fixed expense for the whole lot       |
//   | sellingPrice           | raw     | GST-inclusive selling price           |
//   | effectiveCost          | derived | quantity x cost, net of discount      |
//   | costWithGst            | derived | effective cost plus GST               |
//   | finalCost              | derived | cost with GST plus expense            |
//   | sellingPriceWithoutGst | derived | selling price with GST divided out    |
//   | sellingPricePerMetre   | derived | tax-exclusive price per unit          |
//   | profit                 | derived | selling price minus final cost        |
//
// =============================================================================

package row

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// FIELD NAMES
// =============================================================================

// Field is the wire name of a row field. It is used as the key in exported
// documents and as the edit address supplied by the presentation layer.
type Field string

const (
	FieldID Field = "id"

	FieldItemName     Field = "itemName"
	FieldQuantity     Field = "quantity"
	FieldCost         Field = "cost"
	FieldDiscount     Field = "discount"
	FieldGST          Field = "gst"
	FieldExpense      Field = "expense"
	FieldSellingPrice Field = "sellingPrice"

	FieldEffectiveCost          Field = "effectiveCost"
	FieldCostWithGST            Field = "costWithGst"
	FieldFinalCost              Field = "finalCost"
	FieldSellingPriceWithoutGST Field = "sellingPriceWithoutGst"
	FieldSellingPricePerMetre   Field = "sellingPricePerMetre"
	FieldProfit                 Field = "profit"
)

// RawFields are the user-editable fields, in display order.
var RawFields = []Field{
	FieldItemName,
	FieldQuantity,
	FieldCost,
	FieldDiscount,
	FieldGST,
	FieldExpense,
	FieldSellingPrice,
}

// DerivedFields are the fields computed by the calculation engine.
var DerivedFields = []Field{
	FieldEffectiveCost,
	FieldCostWithGST,
	FieldFinalCost,
	FieldSellingPriceWithoutGST,
	FieldSellingPricePerMetre,
	FieldProfit,
}

// AllFields lists all 14 fields in export column order.
var AllFields = append(append([]Field{FieldID}, RawFields...), DerivedFields...)

// aliases maps alternative spellings found in hand-written documents to
// their canonical field.
var aliases = map[string]Field{
	"name": FieldItemName,
	"item": FieldItemName,
}

// IsRaw reports whether f is a user-editable field.
func (f Field) IsRaw() bool {
	for _, raw := range RawFields {
		if raw == f {
			return true
		}
	}
	return false
}

// IsNumeric reports whether f holds a number. Only the item name and the
// identifier are free text.
func (f Field) IsNumeric() bool {
	return f != FieldID && f != FieldItemName
}

// ParseField resolves a user- or document-supplied name to a Field.
//
// Matching ignores case, underscores and dashes, so "selling_price",
// "SellingPrice" and "selling-price" all resolve to FieldSellingPrice.
func ParseField(name string) (Field, error) {
	key := normalize(name)
	for _, f := range AllFields {
		if normalize(string(f)) == key {
			return f, nil
		}
	}
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, "-", "")
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnknownField is returned when a field name does not match any field.
	ErrUnknownField = errors.New("unknown field")

	// ErrReadOnlyField is returned when an edit targets a derived field or
	// the identifier.
	ErrReadOnlyField = errors.New("field is read-only")
)

// =============================================================================
// ROW
// =============================================================================

// Row is one priceable item.
type Row struct {
	ID string `json:"id" yaml:"id"`

	ItemName     string `json:"itemName" yaml:"itemName"`
	Quantity     string `json:"quantity" yaml:"quantity"`
	Cost         string `json:"cost" yaml:"cost"`
	Discount     string `json:"discount" yaml:"discount"`
	GST          string `json:"gst" yaml:"gst"`
	Expense      string `json:"expense" yaml:"expense"`
	SellingPrice string `json:"sellingPrice" yaml:"sellingPrice"`

	EffectiveCost          string `json:"effectiveCost" yaml:"effectiveCost"`
	CostWithGST            string `json:"costWithGst" yaml:"costWithGst"`
	FinalCost              string `json:"finalCost" yaml:"finalCost"`
	SellingPriceWithoutGST string `json:"sellingPriceWithoutGst" yaml:"sellingPriceWithoutGst"`
	SellingPricePerMetre   string `json:"sellingPricePerMetre" yaml:"sellingPricePerMetre"`
	Profit                 string `json:"profit" yaml:"profit"`
}

// ref returns a pointer to the struct field backing f.
func (r *Row) ref(f Field) *string {
	switch f {
	case FieldID:
		return &r.ID
	case FieldItemName:
		return &r.ItemName
	case FieldQuantity:
		return &r.Quantity
	case FieldCost:
		return &r.Cost
	case FieldDiscount:
		return &r.Discount
	case FieldGST:
		return &r.GST
	case FieldExpense:
		return &r.Expense
	case FieldSellingPrice:
		return &r.SellingPrice
	case FieldEffectiveCost:
		return &r.EffectiveCost
	case FieldCostWithGST:
		return &r.CostWithGST
	case FieldFinalCost:
		return &r.FinalCost
	case FieldSellingPriceWithoutGST:
		return &r.SellingPriceWithoutGST
	case FieldSellingPricePerMetre:
		return &r.SellingPricePerMetre
	case FieldProfit:
		return &r.Profit
	}
	return nil
}

// Get returns the text of field f.
func (r Row) Get(f Field) (string, bool) {
	p := r.ref(f)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set replaces the text of a raw field. Derived fields and the identifier
// cannot be set this way.
func (r *Row) Set(f Field, value string) error {
	p := r.ref(f)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	if !f.IsRaw() {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, f)
	}
	*p = value
	return nil
}

// Load assigns any field, including derived ones. It is used by decoders
// rebuilding a row from a document.
func (r *Row) Load(f Field, value string) {
	if p := r.ref(f); p != nil {
		*p = value
	}
}

// Record returns the field values in AllFields order.
func (r Row) Record() []string {
	out := make([]string, len(AllFields))
	for i, f := range AllFields {
		out[i], _ = r.Get(f)
	}
	return out
}

// =============================================================================
// DEFAULTS AND CREATION
// =============================================================================

// ZeroDerived is the text every derived field holds before the first
// calculation.
const ZeroDerived = "0.00"

// Defaults holds the raw values given to a newly created row.
type Defaults struct {
	ItemName     string
	Quantity     string
	Cost         string
	Discount     string
	GST          string
	Expense      string
	SellingPrice string
}

// BuiltinDefaults returns the defaults used when no configuration overrides
// them.
func BuiltinDefaults() Defaults {
	return Defaults{
		ItemName:     "New Item",
		Quantity:     "30",
		Cost:         "9.75",
		Discount:     "0.02",
		GST:          "0.18",
		Expense:      "55",
		SellingPrice: "660",
	}
}

// Overrides is a partial set of raw values. A nil field keeps the default.
type Overrides struct {
	ItemName     *string
	Quantity     *string
	Cost         *string
	Discount     *string
	GST          *string
	Expense      *string
	SellingPrice *string
}

// Merge returns o with every non-nil field of other applied on top.
func (o Overrides) Merge(other Overrides) Overrides {
	pick := func(a, b *string) *string {
		if b != nil {
			return b
		}
		return a
	}
	return Overrides{
		ItemName:     pick(o.ItemName, other.ItemName),
		Quantity:     pick(o.Quantity, other.Quantity),
		Cost:         pick(o.Cost, other.Cost),
		Discount:     pick(o.Discount, other.Discount),
		GST:          pick(o.GST, other.GST),
		Expense:      pick(o.Expense, other.Expense),
		SellingPrice: pick(o.SellingPrice, other.SellingPrice),
	}
}

// InheritFrom returns the overrides a row added after first should receive:
// discount, GST and expense carry over so a sheet keeps consistent terms.
func InheritFrom(first Row) Overrides {
	discount, gst, expense := first.Discount, first.GST, first.Expense
	return Overrides{
		Discount: &discount,
		GST:      &gst,
		Expense:  &expense,
	}
}

// New creates a row from the built-in defaults and the given overrides.
func New(o Overrides) Row {
	return NewWithDefaults(BuiltinDefaults(), o)
}

// NewWithDefaults creates a row with a fresh identifier. The derived fields
// are zeroed; callers are expected to run the calculation engine before the
// row is shown.
func NewWithDefaults(d Defaults, o Overrides) Row {
	value := func(def string, override *string) string {
		if override != nil {
			return *override
		}
		return def
	}

	return Row{
		ID: NewID(),

		ItemName:     value(d.ItemName, o.ItemName),
		Quantity:     value(d.Quantity, o.Quantity),
		Cost:         value(d.Cost, o.Cost),
		Discount:     value(d.Discount, o.Discount),
		GST:          value(d.GST, o.GST),
		Expense:      value(d.Expense, o.Expense),
		SellingPrice: value(d.SellingPrice, o.SellingPrice),

		EffectiveCost:          ZeroDerived,
		CostWithGST:            ZeroDerived,
		FinalCost:              ZeroDerived,
		SellingPriceWithoutGST: ZeroDerived,
		SellingPricePerMetre:   ZeroDerived,
		Profit:                 ZeroDerived,
	}
}

// NewID returns a fresh row identifier.
func NewID() string {
	return uuid.NewString()
}
