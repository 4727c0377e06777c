package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// swfVersionFlag is a persistent flag read by the subcommand that
// builds a VM (run); disasm accepts it but does not read it.
var swfVersionFlag int

var rootCmd = &cobra.Command{
	Use:   "avm1",
	Short: "Run and inspect Adobe Flash AVM1 (ActionScript 1/2) bytecode",
	Long: `avm1 drives this module's AVM1 core directly from the command line:
execute a tag's action bytecode against a fresh movie, or disassemble
one into a human-readable instruction listing.

Action bytecode arrives pre-assembled inside a SWF DoAction/DoInitAction
tag — there is no source-text format for this command to lex, parse,
or compile, only the wire bytecode a SWF-reading host would hand it.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&swfVersionFlag, "swf-version", 7, "declaring movie's SWF version (gates case folding, _global, coercion rules)")
}
