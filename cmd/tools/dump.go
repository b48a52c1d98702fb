package tools

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/sawfish/cmd/cli"
	"github.com/Manu343726/sawfish/pkg/slaspec/builder"
	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/utils"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var ErrUnknownDumpFormat = errors.New("unknown dump format")

type wordDump struct {
	Word   int                  `yaml:"word"`
	Tokens []instructions.Token `yaml:"tokens"`
}

// Rendered constructor, with the match pattern in its sleigh form
type constructorDump struct {
	Name    string   `yaml:"name"`
	Display string   `yaml:"display,omitempty"`
	Match   string   `yaml:"match"`
	Action  []string `yaml:"action,omitempty"`
	Pcode   []string `yaml:"pcode,omitempty"`
}

func newConstructorDump(constructor instructions.Constructor) constructorDump {
	return constructorDump{
		Name:    constructor.Name,
		Display: constructor.Display,
		Match:   constructor.MatchString(),
		Action:  constructor.Action,
		Pcode:   constructor.Pcode,
	}
}

// Aggregated model of a family
type familyDump struct {
	Name         string                  `yaml:"name"`
	Description  string                  `yaml:"description,omitempty"`
	Bits         int                     `yaml:"bits"`
	PcodeOps     []string                `yaml:"pcodeops,omitempty"`
	Words        []wordDump              `yaml:"words"`
	Attachments  []instructions.TokenVar `yaml:"attachments,omitempty"`
	Constructors []constructorDump       `yaml:"constructors"`
}

func newFamilyDump(family *instructions.Family) (familyDump, error) {
	dump := familyDump{
		Name:        family.Name(),
		Description: family.Description(),
		Bits:        16 * family.Words(),
		PcodeOps:    family.PcodeOps(),
	}

	for word := 0; word < family.Words(); word++ {
		tokens, err := family.Tokens(word)
		if err != nil {
			return familyDump{}, err
		}

		dump.Words = append(dump.Words, wordDump{Word: word, Tokens: tokens})
	}

	var err error

	if dump.Attachments, err = family.Attachments(); err != nil {
		return familyDump{}, err
	}

	constructors, err := family.Constructors()
	if err != nil {
		return familyDump{}, err
	}
	dump.Constructors = utils.Map(constructors, newConstructorDump)

	return dump, nil
}

func dumpFamilies(w io.Writer, groups []builder.Group, format string) error {
	var dumps []familyDump

	for _, group := range groups {
		for _, family := range group.Families {
			dump, err := newFamilyDump(family)
			if err != nil {
				return err
			}

			dumps = append(dumps, dump)
		}
	}

	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(dumps); err != nil {
			return err
		}
		return encoder.Close()
	case "spew":
		spew.Fdump(w, dumps)
		return nil
	}

	return fmt.Errorf("%w '%v', expected yaml or spew", ErrUnknownDumpFormat, format)
}

var dumpCmd = &cobra.Command{
	Use:   "dump [family...]",
	Short: "Dump the aggregated model of the instruction families",
	Long: `Builds the given families, or every family if none is given, and dumps their tokens,
attachments and rendered constructors.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			viper.Set(cli.KeyFamilies, args)
		}

		b, closeLog := cli.Builder(viper.GetViper())
		defer closeLog()

		groups, err := b.Families()
		if err != nil {
			closeLog()
			cli.Fail(2, err)
		}

		format, _ := cmd.Flags().GetString("format")
		if err := dumpFamilies(os.Stdout, groups, format); err != nil {
			closeLog()
			cli.Fail(1, err)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().String("format", "yaml", "Dump format (yaml, spew)")
}
