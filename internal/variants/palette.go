package variants

import "strings"

// PaletteColor is one metal finish the storefront offers.
type PaletteColor struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Palette is the ordered set of selectable metal finishes.
type Palette []PaletteColor

// DefaultPalette returns the storefront's stock finishes.
func DefaultPalette() Palette {
	return Palette{
		{Name: "Gold", Code: "#FFD700"},
		{Name: "Silver", Code: "#C0C0C0"},
		{Name: "Bronze", Code: "#CD7F32"},
	}
}

// Lookup finds a palette color by name, case-insensitively.
func (p Palette) Lookup(name string) (PaletteColor, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, color := range p {
		if strings.ToLower(color.Name) == needle {
			return color, true
		}
	}
	return PaletteColor{}, false
}
