package encoding

import (
	"sort"

	"price-predictor/internal/models"
)

// Category is a closed label -> code mapping for one categorical field.
// Labels outside the mapping are rejected, never defaulted.
type Category struct {
	field string
	codes map[string]int
}

// NewCategory copies codes so later mutation by the caller cannot leak in.
func NewCategory(field string, codes map[string]int) Category {
	c := Category{field: field, codes: make(map[string]int, len(codes))}
	for label, code := range codes {
		c.codes[label] = code
	}
	return c
}

// Field returns the payload field the category encodes.
func (c Category) Field() string { return c.field }

// Code looks up a label.
func (c Category) Code(label string) (int, bool) {
	code, ok := c.codes[label]
	return code, ok
}

// Labels returns the known labels in sorted order.
func (c Category) Labels() []string {
	out := make([]string, 0, len(c.codes))
	for label := range c.codes {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Vocabulary bundles the three categorical mappings the model was trained with.
type Vocabulary struct {
	EventType    Category
	ProductName  Category
	SeasonPeriod Category
}

// DefaultVocabulary returns the label encodings fitted alongside the
// production regression artifact. Codes come from the training-time label
// encoder over the full catalogue and are not contiguous.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		EventType: NewCategory(models.FieldEventType, map[string]int{
			"Anniversary":      0,
			"Corporate Event":  2,
			"Engagement Party": 3,
			"Wedding":          5,
		}),
		ProductName: NewCategory(models.FieldProductName, map[string]int{
			"Navy Blue and Yellow Tent": 6,
			"Red Carpet":                11,
			"Surpentine Buffet Table":   12,
			"Versailles Chair":          13,
		}),
		SeasonPeriod: NewCategory(models.FieldSeasonPeriod, map[string]int{
			"1-4":  0,
			"5-8":  1,
			"9-12": 2,
		}),
	}
}
