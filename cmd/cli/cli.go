// Shared configuration, logging and error reporting of the sawfish commands
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Manu343726/sawfish/pkg/slaspec/builder"
	"github.com/Manu343726/sawfish/pkg/utils"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyOutput    = "output"
	KeyFamilies  = "families"
	KeyEndian    = "endian"
	KeyAlignment = "alignment"
	KeyManifest  = "manifest"
	KeyLogLevel  = "log.level"
	KeyLogFile   = "log.file"
)

func SetDefaults(v *viper.Viper) {
	defaults := builder.DefaultOptions()

	v.SetDefault(KeyOutput, defaults.Output)
	v.SetDefault(KeyFamilies, defaults.Families)
	v.SetDefault(KeyEndian, defaults.Endian)
	v.SetDefault(KeyAlignment, defaults.Alignment)
	v.SetDefault(KeyManifest, defaults.Manifest)
	v.SetDefault(KeyLogLevel, "info")
}

// Decodes the build options from the configuration
func Options(v *viper.Viper) (builder.Options, error) {
	options := builder.DefaultOptions()

	if err := v.Unmarshal(&options); err != nil {
		return builder.Options{}, err
	}

	return options, nil
}

// Returns the configured logger and a function releasing its log file, if any
func Logger(v *viper.Viper) (*slog.Logger, func() error, error) {
	var file io.Writer
	closeFile := func() error { return nil }

	if path := v.GetString(KeyLogFile); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}

		file = f
		closeFile = f.Close
	}

	logger, err := utils.NewLogger(os.Stderr, v.GetString(KeyLogLevel), file)
	if err != nil {
		closeFile()
		return nil, nil, err
	}

	return logger, closeFile, nil
}

// Prints the error and exits with the given code
func Fail(code int, err error) {
	Report(os.Stderr, err)
	os.Exit(code)
}

// Returns a builder configured from the configuration. Exits on failure
func Builder(v *viper.Viper) (*builder.Builder, func() error) {
	options, err := Options(v)
	if err != nil {
		Fail(1, fmt.Errorf("error reading configuration: %w", err))
	}

	logger, closeLog, err := Logger(v)
	if err != nil {
		Fail(1, err)
	}

	b, err := builder.NewBuilder(options, logger)
	if err != nil {
		closeLog()
		Fail(1, err)
	}

	return b, closeLog
}
