package cmd

import (
	"bytes"
	"os"
	"testing"
)

// addAndReturnHex is `ActionPush 2, ActionPush 3, ActionAdd, ActionReturn`
// assembled by hand per spec 4.5's tagged-push-record and payload-length
// encoding (the same buffer pkg/avm1's own tests exercise).
const addAndReturnHex = "960a00070200000007030000000a3e"

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunActionExecutesInlineHex(t *testing.T) {
	oldHex, oldTarget, oldTrace := evalHex, target, showTrace
	defer func() { evalHex, target, showTrace = oldHex, oldTarget, oldTrace }()

	evalHex = addAndReturnHex
	target = "/"
	showTrace = false

	output, err := captureStdout(t, func() error { return runAction(runCmd, nil) })
	if err != nil {
		t.Fatalf("runAction: %v", err)
	}
	if output != "5\n" {
		t.Errorf("runAction output = %q, want \"5\\n\"", output)
	}
}

func TestRunActionRequiresFileOrHex(t *testing.T) {
	oldHex := evalHex
	defer func() { evalHex = oldHex }()
	evalHex = ""

	if err := runAction(runCmd, nil); err == nil {
		t.Error("runAction with no file and no --hex should return an error")
	}
}

func TestRunActionReadsFile(t *testing.T) {
	oldHex, oldTarget := evalHex, target
	defer func() { evalHex, target = oldHex, oldTarget }()
	evalHex, target = "", "/"

	path := writeHexAsBinary(t, addAndReturnHex)

	output, err := captureStdout(t, func() error { return runAction(runCmd, []string{path}) })
	if err != nil {
		t.Fatalf("runAction: %v", err)
	}
	if output != "5\n" {
		t.Errorf("runAction output = %q, want \"5\\n\"", output)
	}
}
