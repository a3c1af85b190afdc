// Package xlsx moves snapshots in and out of Excel workbooks and renders
// them as HTML tables.
package xlsx

import (
	"strings"

	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/aerissecure/chatedit"
)

// Helper to extract the underlying font XML struct from a style ID
func fontOf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Font {
	xf := xfOf(ss, styleID)
	if xf == nil || xf.FontIdAttr == nil || ss.X().Fonts == nil {
		return nil
	}
	fontIdx := int(*xf.FontIdAttr)
	if fontIdx < 0 || fontIdx >= len(ss.X().Fonts.Font) {
		return nil
	}
	return ss.X().Fonts.Font[fontIdx]
}

// Helper to extract the underlying fill XML struct from a style ID
func fillOf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Fill {
	xf := xfOf(ss, styleID)
	if xf == nil || xf.FillIdAttr == nil || ss.X().Fills == nil {
		return nil
	}
	fillIdx := int(*xf.FillIdAttr)
	if fillIdx < 0 || fillIdx >= len(ss.X().Fills.Fill) {
		return nil
	}
	return ss.X().Fills.Fill[fillIdx]
}

// Helper to extract the underlying border XML struct from a style ID
func borderOf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Border {
	xf := xfOf(ss, styleID)
	if xf == nil || xf.BorderIdAttr == nil || ss.X().Borders == nil {
		return nil
	}
	borderIdx := int(*xf.BorderIdAttr)
	if borderIdx < 0 || borderIdx >= len(ss.X().Borders.Border) {
		return nil
	}
	return ss.X().Borders.Border[borderIdx]
}

func xfOf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Xf {
	if ss.X().CellXfs == nil || int(styleID) >= len(ss.X().CellXfs.Xf) {
		return nil
	}
	return ss.X().CellXfs.Xf[styleID]
}

// numberFormatOf returns the custom format code of a style, if any.
// Built-in formats (id < 164) carry no code in the workbook.
func numberFormatOf(ss spreadsheet.StyleSheet, styleID uint32) string {
	xf := xfOf(ss, styleID)
	if xf == nil || xf.NumFmtIdAttr == nil || ss.X().NumFmts == nil {
		return ""
	}
	for _, nf := range ss.X().NumFmts.NumFmt {
		if nf.NumFmtIdAttr == *xf.NumFmtIdAttr {
			return nf.FormatCodeAttr
		}
	}
	return ""
}

// themeColor resolves a theme color index (0-based) to an RGB hex string (e.g., "FFFFFF").
// It does not apply tint. Returns false if the index is invalid or the color cannot be resolved.
func themeColor(wb *spreadsheet.Workbook, themeIdx int) (string, bool) {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil {
		return "", false
	}
	clrScheme := themes[0].ThemeElements.ClrScheme

	var clr *dml.CT_Color
	switch themeIdx {
	case 0:
		clr = clrScheme.Dk1
	case 1:
		clr = clrScheme.Lt1
	case 2:
		clr = clrScheme.Dk2
	case 3:
		clr = clrScheme.Lt2
	case 4:
		clr = clrScheme.Accent1
	case 5:
		clr = clrScheme.Accent2
	case 6:
		clr = clrScheme.Accent3
	case 7:
		clr = clrScheme.Accent4
	case 8:
		clr = clrScheme.Accent5
	case 9:
		clr = clrScheme.Accent6
	case 10:
		clr = clrScheme.Hlink
	case 11:
		clr = clrScheme.FolHlink
	default:
		return "", false
	}

	if clr == nil {
		return "", false
	}
	if clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "" {
		return strings.ToUpper(clr.SrgbClr.ValAttr), true
	} else if clr.SysClr != nil && clr.SysClr.LastClrAttr != nil {
		return strings.ToUpper(*clr.SysClr.LastClrAttr), true
	}
	return "", false
}

// resolveStyle maps the workbook style of a cell onto the subset of
// properties a snapshot tracks.
func resolveStyle(wb *spreadsheet.Workbook, styleID uint32) chatedit.CellStyle {
	var st chatedit.CellStyle
	ss := wb.StyleSheet
	if font := fontOf(ss, styleID); font != nil {
		st.Bold = enabled(font.B)
		st.Italic = enabled(font.I)
		if len(font.Color) > 0 && font.Color[0].RgbAttr != nil {
			st.FontColor = normalizeColor(*font.Color[0].RgbAttr)
		}
	}
	if fill := fillOf(ss, styleID); fill != nil && fill.PatternFill != nil && fill.PatternFill.FgColor != nil {
		fg := fill.PatternFill.FgColor
		if fg.RgbAttr != nil {
			st.Background = normalizeColor(*fg.RgbAttr)
		} else if fg.ThemeAttr != nil {
			if hex, ok := themeColor(wb, int(*fg.ThemeAttr)); ok {
				st.Background = hex
			}
		}
	}
	if border := borderOf(ss, styleID); border != nil && border.Left != nil && border.Left.Color != nil && border.Left.Color.RgbAttr != nil {
		st.BorderColor = normalizeColor(*border.Left.Color.RgbAttr)
	}
	if xf := xfOf(ss, styleID); xf != nil && xf.Alignment != nil {
		switch h := xf.Alignment.HorizontalAttr.String(); h {
		case "left", "right", "justify":
			st.HorizontalAlign = h
		case "center", "centerContinuous", "distributed":
			st.HorizontalAlign = "center"
		}
		switch xf.Alignment.VerticalAttr.String() {
		case "top":
			st.VerticalAlign = "top"
		case "center":
			st.VerticalAlign = "middle"
		}
		if xf.Alignment.WrapTextAttr != nil {
			st.WrapText = *xf.Alignment.WrapTextAttr
		}
	}
	st.NumberFormat = numberFormatOf(ss, styleID)
	return st
}

func enabled(props []*sml.CT_BooleanProperty) bool {
	if len(props) == 0 {
		return false
	}
	return props[0].ValAttr == nil || *props[0].ValAttr
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a 6-digit RGB string.
func normalizeColor(hex string) string {
	hex = strings.ToUpper(strings.TrimPrefix(hex, "#"))
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}
