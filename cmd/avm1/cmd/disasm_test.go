package cmd

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeHexAsBinary decodes hexStr and writes it to a temp file, for
// tests exercising the file-argument path instead of --hex.
func writeHexAsBinary(t *testing.T, hexStr string) string {
	t.Helper()
	code, err := hex.DecodeString(hexStr)
	if err != nil {
		t.Fatalf("invalid test hex %q: %v", hexStr, err)
	}
	path := filepath.Join(t.TempDir(), "action.bin")
	if err := os.WriteFile(path, code, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDisasmActionListsInlineHex(t *testing.T) {
	oldHex := evalHex
	defer func() { evalHex = oldHex }()
	evalHex = addAndReturnHex

	output, err := captureStdout(t, func() error { return disasmAction(disasmCmd, nil) })
	if err != nil {
		t.Fatalf("disasmAction: %v", err)
	}
	if !strings.Contains(output, "ActionPush 2, 3") {
		t.Errorf("disasm output missing push summary:\n%s", output)
	}
	if !strings.Contains(output, "ActionReturn") {
		t.Errorf("disasm output missing ActionReturn:\n%s", output)
	}
}

func TestDisasmActionRequiresFileOrHex(t *testing.T) {
	oldHex := evalHex
	defer func() { evalHex = oldHex }()
	evalHex = ""

	if err := disasmAction(disasmCmd, nil); err == nil {
		t.Error("disasmAction with no file and no --hex should return an error")
	}
}
