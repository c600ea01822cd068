package variant

import (
	"bytes"
	"encoding/json"
	"errors"
)

// BrandAttribute is the attributes key that records the product brand.
const BrandAttribute = "Brand"

// ColorAxisLabel is the display label of the colour axis.
const ColorAxisLabel = "Color"

// DefaultLabel names the variant of a product without any variation.
const DefaultLabel = "Default"

// Dimension is a named axis of variation from the attribute catalog.
type Dimension struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Active   bool     `json:"active"`
	Values   []string `json:"values"`
}

// Color is a colour option; only active colours join the colour axis.
type Color struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Hex    string `json:"hex"`
	Active bool   `json:"active"`
}

// Selection holds the values chosen for generation. Colors are colour names,
// Values maps a dimension id to its chosen values in selection order.
type Selection struct {
	Colors []string            `json:"colors"`
	Values map[string][]string `json:"selection"`
}

// Attribute is one entry of a row's provenance record.
type Attribute struct {
	Name  string
	Value string
}

// Attributes keeps insertion order and encodes as a JSON object.
type Attributes []Attribute

// Get returns the value recorded under name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the entries as one JSON object in insertion order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the order of its keys.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("attributes must be a JSON object")
	}

	out := Attributes{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, Attribute{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

// Row is a concrete sellable variant of a product.
type Row struct {
	ID         int64      `json:"id"`
	ProductID  int64      `json:"productId"`
	Name       string     `json:"name"`
	SKU        string     `json:"sku"`
	Price      float64    `json:"price"`
	Stock      int        `json:"stock"`
	Active     bool       `json:"active"`
	Attributes Attributes `json:"attributes"`
}

// Defaults are the initial field values of generated rows.
type Defaults struct {
	Price float64
	Stock int
}

// Snapshot is the immutable input of one generation pass.
type Snapshot struct {
	ProductID  int64
	BaseSKU    string
	BrandName  string
	Dimensions []Dimension
	Colors     []Color
	Selection  Selection
	Existing   []Row
	Defaults   Defaults
}

// Result is either a batch of new rows (OK) or the names of the required
// dimensions that still lack a selection.
type Result struct {
	OK              bool     `json:"ok"`
	NewRows         []Row    `json:"newRows,omitempty"`
	MissingRequired []string `json:"missingRequired,omitempty"`
}
