package builder

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Manu343726/sawfish/pkg/slaspec/emitter"
	"github.com/Manu343726/sawfish/pkg/slaspec/families"
	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
)

const (
	MainFile         = "blackfinplus.slaspec"
	IncludesDir      = "includes"
	RegistersFile    = "registers.sinc"
	InstructionsFile = "instructions.sinc"
)

// A rendered output file
type File struct {
	// Path relative to the output directory, with forward slashes
	Path    string
	Content []byte
}

// Aggregated families of one instruction width
type Group struct {
	Bits     int
	Dir      string
	Families []*instructions.Family
}

// Generates the SLEIGH description of the selected instruction families
type Builder struct {
	options Options
	groups  []families.Group
	emitter *emitter.Emitter
	logger  *slog.Logger
}

func NewBuilder(options Options, logger *slog.Logger) (*Builder, error) {
	return newBuilder(options, families.All(), logger)
}

func newBuilder(options Options, catalog []families.Group, logger *slog.Logger) (*Builder, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	groups, err := families.Select(catalog, options.Families)
	if err != nil {
		return nil, err
	}

	e, err := emitter.NewEmitter()
	if err != nil {
		return nil, err
	}

	return &Builder{
		options: options,
		groups:  groups,
		emitter: e,
		logger:  logger,
	}, nil
}

func (b *Builder) Options() Options {
	return b.options
}

// Builds and aggregates every selected family. Every failure is collected
// and returned joined, and no group is returned if any family failed
func (b *Builder) Families() ([]Group, error) {
	var failures []error
	groups := make([]Group, 0, len(b.groups))

	for _, catalogGroup := range b.groups {
		group := Group{Bits: catalogGroup.Bits, Dir: catalogGroup.Dir()}

		for _, entry := range catalogGroup.Families {
			family, err := entry.Build()
			if err != nil {
				failures = append(failures, err)
				continue
			}

			if err := family.InitTokens(); err != nil {
				failures = append(failures, err)
				continue
			}

			summary, err := Summarize(family)
			if err != nil {
				failures = append(failures, err)
				continue
			}

			b.logger.Info("family built",
				slog.String("family", summary.Name),
				slog.Int("bits", summary.Bits),
				slog.Int("instructions", summary.Instructions),
				slog.Int("tokens", summary.Tokens),
				slog.Int("attachments", summary.Attachments),
			)

			group.Families = append(group.Families, family)
		}

		groups = append(groups, group)
	}

	if len(failures) > 0 {
		return nil, errors.Join(failures...)
	}

	return groups, nil
}

func (b *Builder) header() emitter.Header {
	header := emitter.DefaultHeader()
	header.Endian = b.options.Endian
	header.Alignment = b.options.Alignment
	header.Registers = IncludesDir + "/" + RegistersFile
	header.Instructions = IncludesDir + "/" + InstructionsFile
	return header
}

// Renders every output file in memory, main file first
func (b *Builder) Render(groups []Group) ([]File, error) {
	var files []File

	render := func(path string, write func(*bytes.Buffer) error) error {
		var buffer bytes.Buffer

		if err := write(&buffer); err != nil {
			return err
		}

		files = append(files, File{Path: path, Content: buffer.Bytes()})
		return nil
	}

	if err := render(MainFile, func(buffer *bytes.Buffer) error {
		return b.emitter.Main(buffer, b.header())
	}); err != nil {
		return nil, err
	}

	if err := render(IncludesDir+"/"+RegistersFile, func(buffer *bytes.Buffer) error {
		return b.emitter.Registers(buffer, &registers.Catalog)
	}); err != nil {
		return nil, err
	}

	includes := make([]emitter.IncludeGroup, 0, len(groups))
	var familyFiles []File

	for _, group := range groups {
		include := emitter.IncludeGroup{Bits: group.Bits}

		for _, family := range group.Families {
			path := group.Dir + "/" + family.Name() + ".sinc"

			var buffer bytes.Buffer
			if err := b.emitter.Family(&buffer, family); err != nil {
				return nil, err
			}

			include.Files = append(include.Files, path)
			familyFiles = append(familyFiles, File{Path: IncludesDir + "/" + path, Content: buffer.Bytes()})
		}

		includes = append(includes, include)
	}

	if err := render(IncludesDir+"/"+InstructionsFile, func(buffer *bytes.Buffer) error {
		return b.emitter.Includes(buffer, includes)
	}); err != nil {
		return nil, err
	}

	return append(files, familyFiles...), nil
}

// Builds every selected family and writes the SLEIGH description to the
// output directory. Nothing is written unless every family builds and renders
func (b *Builder) Build() (*Manifest, error) {
	groups, err := b.Families()
	if err != nil {
		return nil, err
	}

	files, err := b.Render(groups)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{}

	for _, group := range groups {
		for _, family := range group.Families {
			summary, err := Summarize(family)
			if err != nil {
				return nil, err
			}

			manifest.Families = append(manifest.Families, summary)
		}
	}

	for _, file := range files {
		if err := b.write(file); err != nil {
			return nil, err
		}

		manifest.Files = append(manifest.Files, newManifestEntry(file))
	}

	if b.options.Manifest {
		content, err := manifest.Marshal()
		if err != nil {
			return nil, err
		}

		if err := b.write(File{Path: ManifestFile, Content: content}); err != nil {
			return nil, err
		}

		b.logger.Info("manifest written", slog.String("path", filepath.Join(b.options.Output, ManifestFile)))
	}

	return manifest, nil
}

func (b *Builder) write(file File) error {
	path := filepath.Join(b.options.Output, filepath.FromSlash(file.Path))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		return err
	}

	b.logger.Debug("file written", slog.String("path", path), slog.Int("bytes", len(file.Content)))
	return nil
}
