package families

import (
	"strings"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
)

func ProgCtrl() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "ProgCtrl",
		Description: "Basic Program Sequencer Control Functions",
		Prefix:      "pgc",
		Base: [][]pattern.FieldTemplate{pattern.MSBFirst(
			pattern.Template("sig", 8, pattern.Mask(0x00)),
			pattern.Template("opc", 4, pattern.Blank()),
			pattern.Template("reg", 4, pattern.Blank()),
		)},
	}, func(f *instructions.Family) {
		for _, op := range []string{"idle", "csync", "ssync", "emuexcpt", "raise", "excpt"} {
			f.AddPcodeOp(op)
		}

		for reg, suffix := range []string{"S", "I", "X", "N", "E"} {
			f.Register("Return").
				Apply(opcode(0x1), fixed("reg", uint16(reg))).
				Display("RT" + suffix).
				Pcode(text.Op(text.Return("RET" + suffix)))
		}

		for _, sync := range []struct {
			reg  uint16
			name string
			op   string
		}{
			{0x0, "Sync", "idle"},
			{0x3, "Sync", "csync"},
			{0x4, "Sync", "ssync"},
			{0x5, "Mode", "emuexcpt"},
		} {
			f.Register(sync.name).
				Apply(opcode(0x2), fixed("reg", sync.reg)).
				Display(strings.ToUpper(sync.op)).
				Pcode(text.Op(text.Macro(sync.op)))
		}

		cli := f.Register("IMaskMv").Apply(splitReg(0, 3, registers.RegisterSet_DReg))
		sti := cli.Fork("IMaskMv")

		cli.Apply(opcode(0x3)).
			Display("CLI {regL}").
			Pcode(
				text.Op(text.Copy(text.Field("regL"), text.Ptr(4, imaskAddress))),
				text.Op(text.Copy(text.Ptr(4, imaskAddress), "0")),
			)
		sti.Apply(opcode(0x4)).
			Display("STI {regL}").
			Pcode(text.Op(text.Copy(text.Ptr(4, imaskAddress), text.Field("regL"))))

		jump := f.Register("JumpCall").Apply(splitReg(0, 3, registers.RegisterSet_PReg))
		call := jump.Fork("JumpCall")

		jump.Apply(opcode(0x5)).
			Display("JUMP ({regL})").
			Pcode(text.Op(text.Goto("[" + text.Field("regL") + "]")))
		call.Apply(opcode(0x6)).
			Display("CALL ({regL})").
			Pcode(
				text.Op(text.Copy("RETS", "inst_next")),
				text.Op(text.Call("["+text.Field("regL")+"]")),
			)

		for _, trap := range []struct {
			opc  uint16
			name string
			op   string
		}{
			{0x9, "Raise", "raise"},
			{0xa, "Excpt", "excpt"},
		} {
			f.Register(trap.name).
				Apply(opcode(trap.opc), fieldType("reg", pattern.UImm())).
				Display(strings.ToUpper(trap.op) + " {reg}").
				Pcode(text.Op(text.Macro(trap.op, text.Field("reg"))))
		}
	})
}
