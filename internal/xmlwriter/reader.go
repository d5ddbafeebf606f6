package xmlwriter

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/profit-calculator/internal/codec"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// node is a generic element tree.
type node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

// Read parses a document produced by Generate into rows. The root element
// name is not checked; each child element with element children becomes a
// record keyed by those children's names.
func Read(r io.Reader) ([]row.Row, error) {
	records, err := Records(r)
	if err != nil {
		return nil, err
	}
	return codec.FromRecords(records)
}

// Records decodes the items of a document as generic records. A child of the
// root that holds only text is kept as that text, so FromRecords rejects it
// as a malformed record.
func Records(r io.Reader) ([]any, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, &codec.ImportError{Index: -1, Err: codec.ErrUnreadable, Detail: err}
	}

	if len(root.Nodes) == 0 && strings.TrimSpace(root.Text) != "" {
		return nil, &codec.ImportError{
			Index:  -1,
			Err:    codec.ErrNotSequence,
			Detail: fmt.Errorf("root element %q holds text", root.XMLName.Local),
		}
	}

	records := make([]any, 0, len(root.Nodes))
	for _, item := range root.Nodes {
		if len(item.Nodes) == 0 {
			records = append(records, strings.TrimSpace(item.Text))
			continue
		}

		record := make(map[string]any, len(item.Nodes))
		for _, field := range item.Nodes {
			record[field.XMLName.Local] = field.Text
		}
		records = append(records, record)
	}

	return records, nil
}
