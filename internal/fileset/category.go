package fileset

import (
	"path/filepath"
	"strings"
)

// Category tags a disc-image file by its extension.
type Category string

const (
	CHD Category = "chd"
	ISO Category = "iso"
	CUE Category = "cue"
	BIN Category = "bin"
	GDI Category = "gdi"
	ZIP Category = "zip"
)

// Categories lists every tracked category in display order.
var Categories = []Category{CUE, BIN, ISO, GDI, CHD, ZIP}

// CategoryFor returns the category for path, chosen solely by its
// case-insensitive extension.
func CategoryFor(path string) (Category, bool) {
	switch cat := Category(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")); cat {
	case CHD, ISO, CUE, BIN, GDI, ZIP:
		return cat, true
	default:
		return "", false
	}
}

// Ext returns the dotted lowercase extension for the category.
func (c Category) Ext() string {
	return "." + string(c)
}

// Label returns the upper-case extension used in listings (".CUE").
func (c Category) Label() string {
	return strings.ToUpper(c.Ext())
}
