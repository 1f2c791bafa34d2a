// Package theme provides color themes for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	Staff []StaffColors

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	Modal ModalColors
}

// StaffColors are the shades of one employee's shift blocks.
type StaffColors struct {
	Base   lipgloss.Color // chip and legend foreground
	Block  lipgloss.Color // block background
	Handle lipgloss.Color // resize handle row
	Busy   lipgloss.Color // block with an unsettled write
	Text   lipgloss.Color // text on Block
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
	Backdrop    lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)

	staff := make([]StaffColors, 0, len(t.Staff))
	for _, c := range t.Staff {
		block := blockBg(c, t.Bg, isLight)
		staff = append(staff, StaffColors{
			Base:   lipgloss.Color(c),
			Block:  lipgloss.Color(block),
			Handle: lipgloss.Color(alternateShade(block, isLight)),
			Busy:   lipgloss.Color(blockMutedBg(c, t.Bg, isLight)),
			Text:   lipgloss.Color(chooseTextColor(block, t.Fg, t.Bg)),
		})
	}

	modalPalette := t.Modal()
	modalBgHex := coalesce(modalPalette.BaseBg, t.BgHighlight, t.Bg)
	modalTextHex := coalesce(modalPalette.TextPrimary, t.Fg)
	modalMutedHex := coalesce(modalPalette.TextMuted, t.FgMuted)
	modalHighlightHex := coalesce(modalPalette.Highlight, t.BgSelection, t.Accent)
	modalBorderHex := coalesce(modalPalette.ModalBorder, t.Accent)
	modalPanelHex := coalesce(t.BgSelection, t.BgHighlight, t.Bg)
	modalBackdropHex := coalesce(t.BgSelection, t.BgHighlight, t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Today:       lipgloss.Color(coalesce(t.Today, t.Accent)),
		Warning:     lipgloss.Color(coalesce(t.Warning, t.Accent)),

		Staff: staff,

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(coalesce(t.Warning, t.Accent), t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:          lipgloss.Color(modalBgHex),
			Border:      adaptiveColor(modalBorderHex),
			Text:        adaptiveColor(modalTextHex),
			Muted:       adaptiveColor(modalMutedHex),
			Highlight:   adaptiveColor(modalHighlightHex),
			Panel:       adaptiveColor(modalPanelHex),
			ReverseText: reverseTextColor(modalBgHex, modalTextHex),
			Backdrop:    lipgloss.Color(modalBackdropHex),
		},
	}
}

// StaffAt returns the colors for the i-th employee, cycling through the palette.
func (p *Palette) StaffAt(i int) StaffColors {
	if len(p.Staff) == 0 {
		return StaffColors{Base: p.Accent, Block: p.BgSelection, Handle: p.BgHighlight, Busy: p.BgHighlight, Text: p.Fg}
	}
	if i < 0 {
		i = -i
	}
	return p.Staff[i%len(p.Staff)]
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func blockBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

func blockMutedBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return muteColor(accent)
}

// darkenColor halves the brightness of a staff color for block
// backgrounds, keeping every channel above a floor so blocks stay visible
// on dark themes.
func darkenColor(hex string) string {
	return scaleColor(hex, 0.50, 40)
}

// muteColor is a heavier darkenColor for blocks with a pending write.
func muteColor(hex string) string {
	return scaleColor(hex, 0.30, 30)
}

// alternateShade creates a subtle alternate shade, used for resize handles.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

// parseColor accepts "#rrggbb" only; theme files never use short forms.
func parseColor(hex string) (colorful.Color, bool) {
	if len(hex) != 7 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}

// scaleColor multiplies each channel by factor with a floor in 0-255 units.
// Unparseable input is returned unchanged.
func scaleColor(hex string, factor float64, floor int) string {
	c, ok := parseColor(hex)
	if !ok {
		return hex
	}
	lo := float64(floor) / 255
	return colorful.Color{
		R: max(c.R*factor, lo),
		G: max(c.G*factor, lo),
		B: max(c.B*factor, lo),
	}.Clamped().Hex()
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Dark:  hex,
		Light: hex,
	}
}

func reverseTextColor(darkBg, lightText string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Dark:  darkBg,
		Light: lightText,
	}
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrastRatio is the WCAG contrast between two colors, from 1 to 21.
func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, ok := parseColor(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes b into a by ratio, clamped to [0, 1].
func blendColors(a, b string, ratio float64) string {
	ca, okA := parseColor(a)
	cb, okB := parseColor(b)
	if !okA || !okB {
		return a
	}
	return ca.BlendRgb(cb, min(1, max(0, ratio))).Clamped().Hex()
}
