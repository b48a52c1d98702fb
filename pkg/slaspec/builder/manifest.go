package builder

import (
	"encoding/hex"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

const ManifestFile = "manifest.yaml"

type ManifestEntry struct {
	// Path relative to the output directory
	Path string `yaml:"path"`
	// Hex encoded BLAKE2b-256 digest of the file contents
	Digest string `yaml:"blake2b"`
	Bytes  int    `yaml:"bytes"`
}

type FamilySummary struct {
	Name         string `yaml:"name"`
	Bits         int    `yaml:"bits"`
	Instructions int    `yaml:"instructions"`
	Tokens       int    `yaml:"tokens"`
	Attachments  int    `yaml:"attachments"`
}

// Lists every generated file and family, so two builds can be compared
type Manifest struct {
	Files    []ManifestEntry `yaml:"files"`
	Families []FamilySummary `yaml:"families"`
}

func Digest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func newManifestEntry(file File) ManifestEntry {
	return ManifestEntry{
		Path:   file.Path,
		Digest: Digest(file.Content),
		Bytes:  len(file.Content),
	}
}

// Summarizes an aggregated family
func Summarize(family *instructions.Family) (FamilySummary, error) {
	summary := FamilySummary{
		Name:         family.Name(),
		Bits:         16 * family.Words(),
		Instructions: len(family.Instructions()),
	}

	for word := 0; word < family.Words(); word++ {
		tokens, err := family.Tokens(word)
		if err != nil {
			return FamilySummary{}, err
		}

		summary.Tokens += len(tokens)
	}

	attachments, err := family.Attachments()
	if err != nil {
		return FamilySummary{}, err
	}
	summary.Attachments = len(attachments)

	return summary, nil
}

func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

func UnmarshalManifest(data []byte) (*Manifest, error) {
	var manifest Manifest

	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}
