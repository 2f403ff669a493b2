package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Dark theme colors
var (
	colorBackground = color.NRGBA{R: 0x16, G: 0x1B, B: 0x22, A: 0xFF} // #161B22
	colorAccent     = color.NRGBA{R: 0x58, G: 0xA6, B: 0xFF, A: 0xFF} // #58A6FF
	colorText       = color.NRGBA{R: 0xC9, G: 0xD1, B: 0xD9, A: 0xFF} // #C9D1D9
	colorTextDim    = color.NRGBA{R: 0x8B, G: 0x94, B: 0x9E, A: 0xFF} // #8B949E
	colorInput      = color.NRGBA{R: 0x21, G: 0x26, B: 0x2D, A: 0xFF} // #21262D
	colorBorder     = color.NRGBA{R: 0x30, G: 0x36, B: 0x3D, A: 0xFF} // #30363D
	colorError      = color.NRGBA{R: 0xF8, G: 0x51, B: 0x49, A: 0xFF} // #F85149
	colorSuccess    = color.NRGBA{R: 0x3F, G: 0xB9, B: 0x50, A: 0xFF} // #3FB950
)

// darkTheme is the extractor's dark theme
type darkTheme struct{}

var _ fyne.Theme = (*darkTheme)(nil)

// Color returns the color for the given theme color name
func (t *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return colorBackground
	case theme.ColorNameButton, theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameHyperlink:
		return colorAccent
	case theme.ColorNameForeground:
		return colorText
	case theme.ColorNamePlaceHolder:
		return colorTextDim
	case theme.ColorNameInputBackground:
		return colorInput
	case theme.ColorNameInputBorder, theme.ColorNameSeparator, theme.ColorNameScrollBar:
		return colorBorder
	case theme.ColorNameError:
		return colorError
	case theme.ColorNameSuccess:
		return colorSuccess
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

// Font returns the font for the given text style
func (t *darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon for the given icon name
func (t *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size for the given size name
func (t *darkTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	default:
		return theme.DefaultTheme().Size(name)
	}
}
