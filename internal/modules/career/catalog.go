// Package career ranks careers against free-text queries and extracts known skills
// from text.
package career

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultNameColumn is the catalog attribute holding a career's display name.
const DefaultNameColumn = "Career Name"

// Career is one catalog row. Attributes keeps every column; Columns preserves their
// original order.
type Career struct {
	Attributes map[string]string
	Columns    []string
}

func (c Career) Get(col string) string { return c.Attributes[col] }

// Text is the document indexed for similarity search: every attribute value in column
// order.
func (c Career) Text() string {
	parts := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		if v := strings.TrimSpace(c.Attributes[col]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

type Catalog struct {
	Careers    []Career
	NameColumn string
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Careers)
}

// LoadCatalog reads a CSV file with a header row, or a YAML list of mappings when the
// extension is .yaml/.yml.
func LoadCatalog(path, nameColumn string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var careers []Career
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		careers, err = readYAML(f)
	default:
		careers, err = readCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return NewCatalog(careers, nameColumn)
}

func NewCatalog(careers []Career, nameColumn string) (*Catalog, error) {
	if nameColumn == "" {
		nameColumn = DefaultNameColumn
	}
	if len(careers) == 0 {
		return nil, errors.New("catalog is empty")
	}
	return &Catalog{Careers: careers, NameColumn: nameColumn}, nil
}

func readCSV(r io.Reader) ([]Career, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var out []Career
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		c := Career{Attributes: make(map[string]string, len(header)), Columns: header}
		for i, col := range header {
			if i < len(row) {
				c.Attributes[col] = strings.TrimSpace(row[i])
			} else {
				c.Attributes[col] = ""
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func readYAML(r io.Reader) ([]Career, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, errors.New("expected a list of careers")
	}

	var out []Career
	for _, item := range doc.Content[0].Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: expected a mapping", item.Line)
		}
		c := Career{Attributes: map[string]string{}}
		for i := 0; i+1 < len(item.Content); i += 2 {
			key := strings.TrimSpace(item.Content[i].Value)
			val := item.Content[i+1]
			var s string
			switch val.Kind {
			case yaml.ScalarNode:
				s = val.Value
			case yaml.SequenceNode:
				parts := make([]string, 0, len(val.Content))
				for _, p := range val.Content {
					parts = append(parts, p.Value)
				}
				s = strings.Join(parts, ", ")
			default:
				continue
			}
			if _, seen := c.Attributes[key]; !seen {
				c.Columns = append(c.Columns, key)
			}
			c.Attributes[key] = strings.TrimSpace(s)
		}
		out = append(out, c)
	}
	return out, nil
}
