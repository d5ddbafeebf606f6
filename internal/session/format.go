package session

import (
	"bytes"
	"fmt"

	"github.com/ginjaninja78/profit-calculator/internal/codec"
	"github.com/ginjaninja78/profit-calculator/internal/csvio"
	"github.com/ginjaninja78/profit-calculator/internal/row"
	"github.com/ginjaninja78/profit-calculator/internal/sheet"
	"github.com/ginjaninja78/profit-calculator/internal/xlsx"
	"github.com/ginjaninja78/profit-calculator/internal/xmlwriter"
)

// encode renders rows in the given format. The empty-collection rule is
// enforced by the caller.
func encode(rows []row.Row, format codec.Format, csv csvio.Settings) ([]byte, error) {
	switch format {
	case codec.XLSX:
		return xlsx.Encode(rows, sheet.TotalProfit(rows))

	case codec.CSV:
		var buf bytes.Buffer
		if err := csvio.Write(&buf, rows, csv); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case codec.XML:
		return xmlwriter.Generate(rows, sheet.TotalProfit(rows)), nil

	case codec.JSON, codec.YAML:
		return codec.Marshal(rows, format)

	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// decode parses a document of the given format, applying the import shape
// validation.
func decode(data []byte, format codec.Format, csv csvio.Settings) ([]row.Row, error) {
	switch format {
	case codec.XLSX:
		return xlsx.Read(bytes.NewReader(data))

	case codec.CSV:
		return csvio.Read(bytes.NewReader(data), csv)

	case codec.XML:
		return xmlwriter.Read(bytes.NewReader(data))

	case codec.JSON, codec.YAML:
		return codec.Import(data, format)

	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
