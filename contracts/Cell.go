package contracts

import (
	"errors"
)

// Cell is the stored content of one address. Dependencies always mirrors the
// address tokens of Formula and is empty when Formula is.
type Cell struct {
	Value        Value
	Formula      string
	Dependencies []string
	Style        CellStyle
}

// Input is the text a user typed into the cell: the formula if present, the literal otherwise
func (c Cell) Input() string {
	if c.Formula != "" {
		return c.Formula
	}

	return c.Value.String()
}

// IsEmpty reports a cell without content. A styled cell may still be empty.
func (c Cell) IsEmpty() bool {
	return c.Formula == "" && c.Value.IsEmpty()
}

// CellStyle is the presentation of a cell. Nil fields are unset, so a style
// doubles as a partial update.
type CellStyle struct {
	Bold            *bool    `json:"bold,omitempty"`
	Italic          *bool    `json:"italic,omitempty"`
	FontSize        *float64 `json:"font_size,omitempty" binding:"omitempty,gt=0,lte=409"`
	Color           *string  `json:"color,omitempty" binding:"omitempty,max=32"`
	BackgroundColor *string  `json:"background_color,omitempty" binding:"omitempty,max=32"`
	TextAlign       *string  `json:"text_align,omitempty" binding:"omitempty,oneof=left center right"`
}

func (s CellStyle) IsZero() bool {
	return s == CellStyle{}
}

// Merge returns the style with every field set in patch overridden
func (s CellStyle) Merge(patch CellStyle) CellStyle {
	if patch.Bold != nil {
		s.Bold = patch.Bold
	}
	if patch.Italic != nil {
		s.Italic = patch.Italic
	}
	if patch.FontSize != nil {
		s.FontSize = patch.FontSize
	}
	if patch.Color != nil {
		s.Color = patch.Color
	}
	if patch.BackgroundColor != nil {
		s.BackgroundColor = patch.BackgroundColor
	}
	if patch.TextAlign != nil {
		s.TextAlign = patch.TextAlign
	}

	return s
}

// CellView is the API representation of a cell
type CellView struct {
	Address string     `json:"address"`
	Value   string     `json:"value"`
	Result  string     `json:"result"`
	Style   *CellStyle `json:"style,omitempty"`
}

type CellViewList map[string]*CellView

var CellNotFoundError = errors.New("cell not found")

var InvalidAddressError = errors.New("invalid cell address")

var InvalidRangeError = errors.New("invalid range")
