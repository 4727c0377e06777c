package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnashcore/avm1/internal/config"
	"github.com/gnashcore/avm1/internal/trace"
	"github.com/gnashcore/avm1/internal/value"
	"github.com/gnashcore/avm1/pkg/avm1"
)

var (
	evalHex   string
	target    string
	showTrace bool
	loopLimit int
	callDepth int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute one tag's action bytecode against a fresh movie",
	Long: `Run executes a single buffer of AVM1 action bytecode — the raw
bytes of one SWF DoAction/DoInitAction tag — against a freshly
constructed VM and prints whatever value a top-level ActionReturn left
on the stack.

Examples:
  # Run bytecode read from a file
  avm1 run action.bin

  # Run inline bytecode given as a hex string
  avm1 run --hex 960a00070200000007030000000a3e

  # Run and print a JSON snapshot of the environment afterward
  avm1 run --trace action.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAction,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&evalHex, "hex", "", "hex-encoded bytecode instead of reading a file")
	runCmd.Flags().StringVar(&target, "target", "/", "initial target path for the root Environment")
	runCmd.Flags().BoolVar(&showTrace, "trace", false, "print a JSON snapshot of the environment after execution")
	runCmd.Flags().IntVar(&loopLimit, "loop-limit", 0, "override the interpreter's backward-branch limit (0: use the built-in default)")
	runCmd.Flags().IntVar(&callDepth, "call-stack-depth", 0, "override the maximum nested call depth (0: use the built-in default)")
}

func runAction(_ *cobra.Command, args []string) error {
	code, err := loadBytecode(args)
	if err != nil {
		return err
	}

	cfg := config.VMConfig{
		SWFVersion:     swfVersionFlag,
		LoopLimit:      loopLimit,
		CallStackDepth: callDepth,
		InitialTarget:  target,
	}
	vm := avm1.New(cfg)
	e := vm.NewEnvironment()

	result, err := vm.Execute(e, code)
	if err != nil {
		if kind, ok := avm1.RuntimeError(err); ok {
			return fmt.Errorf("runtime error: %w", kind)
		}
		return err
	}

	fmt.Println(value.ToString(result, cfg.Version(), vm.Arena))

	if showTrace {
		snap := trace.Capture(e, vm.Arena)
		fmt.Fprintln(os.Stderr, snap.String())
	}
	return nil
}

// loadBytecode resolves run's (and disasm's) input source: an inline
// --hex string takes precedence over a file argument.
func loadBytecode(args []string) ([]byte, error) {
	if evalHex != "" {
		code, err := hex.DecodeString(evalHex)
		if err != nil {
			return nil, fmt.Errorf("invalid --hex value: %w", err)
		}
		return code, nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("provide a bytecode file path or use --hex for inline bytecode")
	}
	code, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return code, nil
}
