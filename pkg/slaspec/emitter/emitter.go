package emitter

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/utils"
)

//go:embed templates
var Templates embed.FS

const (
	familyTemplate       = "family.sinc.tmpl"
	mainTemplate         = "main.slaspec.tmpl"
	instructionsTemplate = "instructions.sinc.tmpl"
	registersTemplate    = "registers.sinc.tmpl"
)

// Writes SLEIGH sources
type Emitter struct {
	template *template.Template
}

func NewEmitter() (*Emitter, error) {
	funcs := template.FuncMap{
		"Join": func(separator string, items []string) string {
			return strings.Join(items, separator)
		},
		"Hex": func(value uint) string {
			return fmt.Sprintf("0x%02x", value)
		},
	}

	t, err := template.New("sleigh").Funcs(funcs).ParseFS(Templates, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &Emitter{
		template: t,
	}, nil
}

// Executes a template in memory, writing the result only on success
func (e *Emitter) execute(writer io.Writer, name string, data any) error {
	var buffer bytes.Buffer

	if err := e.template.ExecuteTemplate(&buffer, name, data); err != nil {
		return err
	}

	_, err := writer.Write(buffer.Bytes())
	return err
}

type wordView struct {
	Name   string
	Tokens []instructions.Token
}

type familyView struct {
	Name         string
	Description  string
	Words        []wordView
	PcodeOps     []string
	Attachments  []instructions.TokenVar
	Constructors []instructions.Constructor
}

// Returns the name of the token declaring the given word of a family
func TokenName(prefix string, word int) string {
	return fmt.Sprintf("%vInstr%v", prefix, 16*(word+1))
}

func newFamilyView(family *instructions.Family) (familyView, error) {
	view := familyView{
		Name:        family.Name(),
		Description: family.Description(),
		PcodeOps:    family.PcodeOps(),
	}

	for word := 0; word < family.Words(); word++ {
		tokens, err := family.Tokens(word)
		if err != nil {
			return familyView{}, err
		}

		if len(tokens) > 0 {
			view.Words = append(view.Words, wordView{
				Name:   TokenName(family.Prefix(), word),
				Tokens: tokens,
			})
		}
	}

	attachments, err := family.Attachments()
	if err != nil {
		return familyView{}, err
	}
	view.Attachments = attachments

	constructors, err := family.Constructors()
	if err != nil {
		return familyView{}, err
	}
	view.Constructors = constructors

	return view, nil
}

// Writes the token declarations, attachments and constructors of an aggregated family
func (e *Emitter) Family(writer io.Writer, family *instructions.Family) error {
	view, err := newFamilyView(family)
	if err != nil {
		return err
	}

	return e.execute(writer, familyTemplate, view)
}

// Global definitions of the main .slaspec file
type Header struct {
	Endian        string
	Alignment     int
	RamSpace      string
	RamSize       int
	RegisterSpace string
	RegisterSize  int
	// Include paths, relative to the main file
	Registers    string
	Instructions string
}

func DefaultHeader() Header {
	return Header{
		Endian:        "little",
		Alignment:     2,
		RamSpace:      "ram",
		RamSize:       4,
		RegisterSpace: "register",
		RegisterSize:  2,
		Registers:     "includes/registers.sinc",
		Instructions:  "includes/instructions.sinc",
	}
}

// Writes the main .slaspec file
func (e *Emitter) Main(writer io.Writer, header Header) error {
	return e.execute(writer, mainTemplate, header)
}

// Family files of one instruction width
type IncludeGroup struct {
	Bits int
	// Include paths, relative to the instructions include file
	Files []string
}

// Writes the include list of every family file, grouped by instruction width. Groups with no files are skipped
func (e *Emitter) Includes(writer io.Writer, groups []IncludeGroup) error {
	return e.execute(writer, instructionsTemplate, utils.Filter(groups, func(group IncludeGroup) bool {
		return len(group.Files) > 0
	}))
}

// Writes the register definitions of every bank in the catalog
func (e *Emitter) Registers(writer io.Writer, catalog *registers.CatalogDescriptor) error {
	return e.execute(writer, registersTemplate, catalog.Banks())
}
