package variant

import "strings"

type axis struct {
	label  string
	values []string
}

// Generate computes the variant rows a selection adds to a product.
//
// Required active dimensions without a selected value refuse the whole
// generation. Otherwise the colour axis and every selected attribute axis are
// expanded, each combination gets a synthesized SKU and label, combinations
// whose SKU the product already owns are dropped and the survivors receive
// ids after the highest existing one. Generate never mutates the snapshot.
func Generate(snap Snapshot) Result {
	if missing := MissingRequired(snap.Dimensions, snap.Selection); len(missing) > 0 {
		return Result{OK: false, MissingRequired: missing}
	}

	axes := assembleAxes(snap)
	raw := make([][]string, len(axes))
	for i, a := range axes {
		raw[i] = a.values
	}

	seen := existingSKUs(snap.Existing, snap.ProductID)
	nextID := maxID(snap.Existing) + 1

	rows := []Row{}
	for _, tuple := range Cartesian(raw) {
		labelled := make([]Attribute, len(tuple))
		for i, value := range tuple {
			labelled[i] = Attribute{Name: axes[i].label, Value: value}
		}

		id := Synthesize(snap.BaseSKU, labelled)
		if _, dup := seen[id.SKU]; dup {
			continue
		}
		seen[id.SKU] = struct{}{}

		attrs := make(Attributes, 0, len(labelled)+1)
		if snap.BrandName != "" {
			attrs = append(attrs, Attribute{Name: BrandAttribute, Value: snap.BrandName})
		}
		attrs = append(attrs, labelled...)

		rows = append(rows, Row{
			ID:         nextID,
			ProductID:  snap.ProductID,
			Name:       id.Label,
			SKU:        id.SKU,
			Price:      snap.Defaults.Price,
			Stock:      snap.Defaults.Stock,
			Active:     true,
			Attributes: attrs,
		})
		nextID++
	}

	return Result{OK: true, NewRows: rows}
}

// MissingRequired lists, in catalog order, the names of required active
// dimensions that have no usable selected value.
func MissingRequired(dims []Dimension, sel Selection) []string {
	var missing []string
	for _, d := range dims {
		if !d.Required || !d.Active {
			continue
		}
		if len(cleanValues(sel.Values[d.ID])) == 0 {
			missing = append(missing, d.Name)
		}
	}
	return missing
}

// Merge prepends the generated rows to the existing collection.
func Merge(newRows, existing []Row) []Row {
	merged := make([]Row, 0, len(newRows)+len(existing))
	merged = append(merged, newRows...)
	return append(merged, existing...)
}

// NextID is the id the next row of the collection receives.
func NextID(existing []Row) int64 {
	return maxID(existing) + 1
}

func assembleAxes(snap Snapshot) []axis {
	var axes []axis

	active := make(map[string]struct{}, len(snap.Colors))
	for _, c := range snap.Colors {
		if c.Active {
			active[c.Name] = struct{}{}
		}
	}

	var colors []string
	for _, name := range cleanValues(snap.Selection.Colors) {
		if _, ok := active[name]; ok {
			colors = append(colors, name)
		}
	}
	if len(colors) > 0 {
		axes = append(axes, axis{label: ColorAxisLabel, values: colors})
	}

	// Dimensions drive the order; selection keys that match no dimension
	// are never visited.
	for _, d := range snap.Dimensions {
		if !d.Active {
			continue
		}
		values := cleanValues(snap.Selection.Values[d.ID])
		if len(values) == 0 {
			continue
		}
		axes = append(axes, axis{label: d.Name, values: values})
	}

	return axes
}

// cleanValues drops blank entries and repeats, keeping first occurrences.
func cleanValues(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func existingSKUs(rows []Row, productID int64) map[string]struct{} {
	skus := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r.ProductID == productID {
			skus[r.SKU] = struct{}{}
		}
	}
	return skus
}

func maxID(rows []Row) int64 {
	var max int64
	for _, r := range rows {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}
