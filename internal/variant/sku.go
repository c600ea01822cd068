package variant

import "strings"

// Identity is the synthesized SKU and display label of one combination.
type Identity struct {
	SKU   string
	Label string
}

// NormalizeToken trims, upper-cases and replaces each whitespace run with a
// single hyphen.
func NormalizeToken(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), "-")
}

// Synthesize builds the SKU and label for a labelled tuple. The brand is not
// part of the tuple and never shows up in either string.
func Synthesize(baseSKU string, tuple []Attribute) Identity {
	if len(tuple) == 0 {
		return Identity{SKU: NormalizeToken(baseSKU), Label: DefaultLabel}
	}

	var sku strings.Builder
	sku.WriteString(NormalizeToken(baseSKU))

	labels := make([]string, 0, len(tuple))
	for _, attr := range tuple {
		sku.WriteByte('-')
		sku.WriteString(NormalizeToken(attr.Value))
		labels = append(labels, attr.Name+": "+attr.Value)
	}

	return Identity{
		SKU:   sku.String(),
		Label: strings.Join(labels, " / "),
	}
}
