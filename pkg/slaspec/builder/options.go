package builder

import (
	"errors"

	"github.com/Manu343726/sawfish/pkg/utils"
)

var ErrInvalidOptions = errors.New("invalid build options")

// Build settings, decoded from the CLI configuration
type Options struct {
	// Output directory
	Output string `mapstructure:"output"`
	// Names of the families to build. Empty builds every family
	Families []string `mapstructure:"families"`
	// Either "little" or "big"
	Endian    string `mapstructure:"endian"`
	Alignment int    `mapstructure:"alignment"`
	// Write a manifest with the digest of every generated file
	Manifest bool `mapstructure:"manifest"`
}

func DefaultOptions() Options {
	return Options{
		Output:    "sleigh",
		Endian:    "little",
		Alignment: 2,
		Manifest:  true,
	}
}

func (o Options) Validate() error {
	if o.Output == "" {
		return utils.MakeError(ErrInvalidOptions, "empty output directory")
	}

	if o.Endian != "little" && o.Endian != "big" {
		return utils.MakeError(ErrInvalidOptions, "endian must be 'little' or 'big', got '%v'", o.Endian)
	}

	if o.Alignment <= 0 {
		return utils.MakeError(ErrInvalidOptions, "alignment must be positive, got %v", o.Alignment)
	}

	return nil
}
