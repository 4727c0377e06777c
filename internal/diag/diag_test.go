package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterSinkFormatsCategoryPrefix(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Emit(ASCoding, "bad argument at index %d", 2)

	got := buf.String()
	if !strings.HasPrefix(got, "[ascoding] ") {
		t.Errorf("Emit output = %q, want prefix [ascoding] ", got)
	}
	if !strings.Contains(got, "bad argument at index 2") {
		t.Errorf("Emit output = %q, want formatted message", got)
	}
}

func TestNullSinkDiscardsSilently(t *testing.T) {
	var s Sink = NullSink{}
	s.Emit(Unimpl, "unrecognized opcode 0x%02x", 0xFF)
}

func TestCollectingSinkRecordsEntries(t *testing.T) {
	s := &CollectingSink{}
	s.Emit(MalformedSWF, "opcode length %d overflows buffer", 9000)
	s.Emit(ASError, "call stack overflow at depth %d", 255)

	if len(s.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(s.Entries))
	}
	if s.Entries[0].Category != MalformedSWF || s.Entries[0].Message != "opcode length 9000 overflows buffer" {
		t.Errorf("Entries[0] = %+v, want {malformedswf, opcode length 9000 overflows buffer}", s.Entries[0])
	}
	if s.Entries[1].Category != ASError {
		t.Errorf("Entries[1].Category = %v, want aserror", s.Entries[1].Category)
	}
}
