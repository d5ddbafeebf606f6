// =============================================================================
// Profit Calculator - XML Writer Module
// =============================================================================
//
// This module renders the sheet as an XML document for systems that take XML
// uploads, and reads such documents back for import.
//
// XML STRUCTURE:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <profitSheet rows="2" totalProfit="533.50">    <!-- Root element -->
//     <item n="1">                                 <!-- One per row, 1-based -->
//       <id>1b4e28ba-2fa1-11d2-883f-0016d3cca427</id>
//       <itemName>New Item</itemName>
//       <quantity>30</quantity>
//       ...
//       <profit>266.75</profit>
//     </item>
//     <item n="2">
//       ...
//     </item>
//   </profitSheet>
//
// Field elements use the row wire names and appear in export column order.
// An empty field is written as a self-closing element.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// Element names of the document.
const (
	RootElement = "profitSheet"
	ItemElement = "item"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// IndexAttribute is the attribute carrying an item's position.
	// Default: "n"
	IndexAttribute string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		IndexAttribute:        "n",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML document from rows.
//
// PARAMETERS:
//   - rows: The rows in the order they should appear.
//   - total: The aggregate profit, written as the totalProfit attribute.
//
// RETURNS:
//   - The XML document as a byte slice.
func Generate(rows []row.Row, total decimal.Decimal) []byte {
	return GenerateWithOptions(rows, total, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML document with custom options.
func GenerateWithOptions(rows []row.Row, total decimal.Decimal, options GenerateOptions) []byte {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}

	buffer.WriteString("<" + RootElement)
	writeAttr(&buffer, "rows", strconv.Itoa(len(rows)))
	writeAttr(&buffer, "totalProfit", total.StringFixed(2))

	if len(rows) == 0 {
		buffer.WriteString("/>\n")
		return buffer.Bytes()
	}
	buffer.WriteString(">\n")

	for i, r := range rows {
		writeItem(&buffer, r, i+1, options)
	}

	buffer.WriteString("</" + RootElement + ">\n")
	return buffer.Bytes()
}

// writeItem writes one row as an item element.
//
// STRUCTURE:
//   <item n="1">
//     <id>...</id>
//     <itemName>...</itemName>
//   </item>
func writeItem(buffer *bytes.Buffer, r row.Row, index int, options GenerateOptions) {
	buffer.WriteString(options.Indent + "<" + ItemElement)
	writeAttr(buffer, options.IndexAttribute, strconv.Itoa(index))
	buffer.WriteString(">\n")

	record := r.Record()
	for i, f := range row.AllFields {
		writeField(buffer, string(f), record[i], options.Indent+options.Indent)
	}

	buffer.WriteString(options.Indent + "</" + ItemElement + ">\n")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeField writes a simple element with a text value.
func writeField(buffer *bytes.Buffer, name, value, indent string) {
	buffer.WriteString(indent)
	if value == "" {
		buffer.WriteString("<" + name + "/>\n")
		return
	}
	fmt.Fprintf(buffer, "<%s>%s</%s>\n", name, escapeXML(value), name)
}

func writeAttr(buffer *bytes.Buffer, name, value string) {
	fmt.Fprintf(buffer, ` %s="%s"`, name, escapeXML(value))
}

// escapeXML escapes text for element content and attribute values. Carriage
// returns, newlines and tabs become character references so a parser hands
// them back unchanged; runes XML 1.0 cannot carry become U+FFFD.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	_ = xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}
