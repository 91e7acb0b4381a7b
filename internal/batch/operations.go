package batch

import (
	"strconv"

	"chdbatch/internal/fileset"
)

// Kind identifies one of the supported operations.
type Kind int

const (
	KindNone Kind = iota
	CreateCD
	CreateDVD
	CreatePSP
	ExtractDVD
	ExtractCUE
	ExtractGDI
)

func (k Kind) String() string {
	switch k {
	case CreateCD:
		return "create_cd"
	case CreateDVD:
		return "create_dvd"
	case CreatePSP:
		return "create_psp"
	case ExtractDVD:
		return "extract_dvd"
	case ExtractCUE:
		return "extract_cue"
	case ExtractGDI:
		return "extract_gdi"
	default:
		return "none"
	}
}

// Operation parameterizes the shared batch algorithm.
type Operation struct {
	Kind        Kind
	Title       string
	Label       string
	Description string
	// Sources are unioned in this order to build the input list.
	Sources    []fileset.Category
	Subcommand string
	Flags      []string
	OutputExt  string
	// Creates marks operations that produce CHD files.
	Creates      bool
	AllowsParent bool
	AllowsChild  bool
}

var creationSources = []fileset.Category{fileset.ISO, fileset.CUE, fileset.GDI}

// Operations returns the operation table in menu order. pspHunkSize is the
// hunk size passed to createdvd for PSP images.
func Operations(pspHunkSize int) []Operation {
	return []Operation{
		{
			Kind:         CreateCD,
			Title:        "CD to CHD",
			Label:        "Create CD CHD",
			Description:  "PSX, Dreamcast, NeoGeo CD, (some) PS2",
			Sources:      creationSources,
			Subcommand:   "createcd",
			OutputExt:    ".chd",
			Creates:      true,
			AllowsParent: true,
		},
		{
			Kind:         CreateDVD,
			Title:        "DVD to CHD",
			Label:        "Create DVD CHD",
			Description:  "PS2 (default hunk size)",
			Sources:      creationSources,
			Subcommand:   "createdvd",
			OutputExt:    ".chd",
			Creates:      true,
			AllowsParent: true,
		},
		{
			Kind:         CreatePSP,
			Title:        "PSP to CHD",
			Label:        "Create PSP CHD",
			Description:  "PSP (" + strconv.Itoa(pspHunkSize) + " hunk size)",
			Sources:      creationSources,
			Subcommand:   "createdvd",
			Flags:        []string{"-hs", strconv.Itoa(pspHunkSize)},
			OutputExt:    ".chd",
			Creates:      true,
			AllowsParent: true,
		},
		{
			Kind:        ExtractDVD,
			Title:       "CHD to ISO",
			Label:       "Extract DVD CHD to ISO",
			Description: "Restore a DVD image from a CHD",
			Sources:     []fileset.Category{fileset.CHD},
			Subcommand:  "extractdvd",
			OutputExt:   ".iso",
		},
		{
			Kind:        ExtractCUE,
			Title:       "CHD to CUE/BIN",
			Label:       "Extract CD CHD to CUE/BIN",
			Description: "Restore a CUE sheet and its BIN tracks from a CHD",
			Sources:     []fileset.Category{fileset.CHD},
			Subcommand:  "extractcd",
			OutputExt:   ".cue",
			AllowsChild: true,
		},
		{
			Kind:        ExtractGDI,
			Title:       "CHD to GDI",
			Label:       "Extract CD CHD to GDI",
			Description: "Restore a Dreamcast GDI image from a CHD",
			Sources:     []fileset.Category{fileset.CHD},
			Subcommand:  "extractcd",
			OutputExt:   ".gdi",
		},
	}
}

// Lookup finds kind in ops.
func Lookup(ops []Operation, kind Kind) (Operation, bool) {
	for _, op := range ops {
		if op.Kind == kind {
			return op, true
		}
	}
	return Operation{}, false
}

// Inputs returns the files op would process from set.
func (op Operation) Inputs(set *fileset.Set) []string {
	return set.Union(op.Sources...)
}

// Consumes lists the categories a finished run clears from the file set.
// Creation runs also drop BIN files since they belong to the consumed CUEs.
func (op Operation) Consumes() []fileset.Category {
	cats := append([]fileset.Category(nil), op.Sources...)
	if op.Creates {
		cats = append(cats, fileset.BIN)
	}
	return cats
}
