package binsort

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/binsort/internal/core"
)

// Category is the closed set of waste categories.
type Category int

const (
	Wet Category = iota
	Dry
	Hazardous
)

// categoryCount is the number of categories; keep in sync with the consts above.
const categoryCount = 3

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{Wet, Dry, Hazardous}
}

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case Wet:
		return "Wet"
	case Dry:
		return "Dry"
	case Hazardous:
		return "Hazardous"
	}
	panic(fmt.Sprintf("binsort: unknown category %d", int(c)))
}

// Color returns the terminal color used for the category.
func (c Category) Color() core.Color {
	switch c {
	case Wet:
		return core.ColorGreen
	case Dry:
		return core.ColorBlue
	case Hazardous:
		return core.ColorRed
	}
	panic(fmt.Sprintf("binsort: unknown category %d", int(c)))
}

// Glyph returns the single-cell marker drawn for items of the category.
func (c Category) Glyph() rune {
	switch c {
	case Wet:
		return 'W'
	case Dry:
		return 'D'
	case Hazardous:
		return 'H'
	}
	panic(fmt.Sprintf("binsort: unknown category %d", int(c)))
}

// MarshalText encodes the category as its lower-case name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText decodes a category name, case-insensitively.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory converts a name into a category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wet":
		return Wet, nil
	case "dry":
		return Dry, nil
	case "hazardous":
		return Hazardous, nil
	default:
		return Wet, fmt.Errorf("binsort: unknown category %q", s)
	}
}

// randomCategory picks any category uniformly.
func randomCategory(rng *rand.Rand) Category {
	return Category(rng.Intn(categoryCount))
}

// otherCategory picks uniformly among the categories different from c.
func otherCategory(rng *rand.Rand, c Category) Category {
	offset := 1 + rng.Intn(categoryCount-1)
	return Category((int(c) + offset) % categoryCount)
}

// Kind is one entry of the item catalog.
type Kind struct {
	Category Category
	Name     string
	Icon     string
}

var catalog = []Kind{
	{Wet, "Banana Peel", "🍌"},
	{Wet, "Apple Core", "🍎"},
	{Wet, "Tea Waste", "🫖"},
	{Dry, "Plastic Bottle", "🍾"},
	{Dry, "Paper", "📄"},
	{Dry, "Cardboard", "📦"},
	{Hazardous, "Battery", "🔋"},
	{Hazardous, "Paint", "🎨"},
	{Hazardous, "Chemical", "⚗️"},
}

// Catalog returns every item kind.
func Catalog() []Kind {
	out := make([]Kind, len(catalog))
	copy(out, catalog)
	return out
}

// KindsOf returns the catalog entries of one category.
func KindsOf(c Category) []Kind {
	var out []Kind
	for _, k := range catalog {
		if k.Category == c {
			out = append(out, k)
		}
	}
	return out
}

// randomKind picks a catalog entry of the given category.
func randomKind(rng *rand.Rand, c Category) Kind {
	kinds := KindsOf(c)
	return kinds[rng.Intn(len(kinds))]
}
