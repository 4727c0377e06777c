package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnashcore/avm1/internal/bytecode"
	"github.com/gnashcore/avm1/internal/host"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Disassemble one tag's action bytecode into a listing",
	Long: `Disasm decodes a buffer of AVM1 action bytecode opcode by opcode,
without executing it, and prints one "<offset>: <name> <payload>" line
per instruction. The same --hex flag as run accepts inline bytecode.

Examples:
  avm1 disasm action.bin
  avm1 disasm --hex 960a00070200000007030000000a3e`,
	Args: cobra.MaximumNArgs(1),
	RunE: disasmAction,
}

func init() {
	rootCmd.AddCommand(disasmCmd)

	disasmCmd.Flags().StringVar(&evalHex, "hex", "", "hex-encoded bytecode instead of reading a file")
}

func disasmAction(_ *cobra.Command, args []string) error {
	code, err := loadBytecode(args)
	if err != nil {
		return err
	}

	buf := host.NewByteCodeBuffer(code)
	fmt.Print(bytecode.Disassemble(buf, 0, uint32(len(code))))
	return nil
}
