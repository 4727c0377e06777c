package errors

import (
	"testing"

	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/value"
)

func TestPropertyDeniedMessageAndCategory(t *testing.T) {
	err := &PropertyDenied{Object: value.ObjectID(3), Name: "x", Reason: "readOnly"}
	if err.Error() != `property "x" on object 3 denied: readOnly` {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category() != diag.ASCoding {
		t.Errorf("Category() = %v, want ascoding", err.Category())
	}
}

func TestUnknownTargetMessageAndCategory(t *testing.T) {
	err := &UnknownTarget{Path: "/a/b"}
	if err.Error() != `target path "/a/b" does not resolve to an object` {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category() != diag.ASCoding {
		t.Errorf("Category() = %v, want ascoding", err.Category())
	}
}

func TestCallStackOverflowMessageAndCategory(t *testing.T) {
	err := &CallStackOverflow{Limit: 255}
	if err.Error() != "call stack depth exceeds limit of 255" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category() != diag.ASError {
		t.Errorf("Category() = %v, want aserror", err.Category())
	}
}

func TestActionLimitExceptionMessageAndCategory(t *testing.T) {
	err := &ActionLimitException{Limit: 65000}
	if err.Error() != "action limit of 65000 branches exceeded" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category() != diag.ASError {
		t.Errorf("Category() = %v, want aserror", err.Category())
	}
}

func TestStackUnderrunMessageAndCategory(t *testing.T) {
	err := &StackUnderrun{Opcode: "ActionAdd2", Wanted: 2, Got: 1}
	if err.Error() != "ActionAdd2 wanted 2 operand(s), stack had 1" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category() != diag.ASCoding {
		t.Errorf("Category() = %v, want ascoding", err.Category())
	}
}

func TestMalformedCodeMessageAndCategory(t *testing.T) {
	err := &MalformedCode{PC: 128, Reason: "length overflows buffer"}
	if err.Error() != "malformed code at pc 128: length overflows buffer" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category() != diag.MalformedSWF {
		t.Errorf("Category() = %v, want malformedswf", err.Category())
	}
}

func TestParserExceptionMessageAndCategory(t *testing.T) {
	err := &ParserException{Tag: "InitAction", Reason: "found in an AS3 SWF"}
	if err.Error() != "InitAction: found in an AS3 SWF" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category() != diag.MalformedSWF {
		t.Errorf("Category() = %v, want malformedswf", err.Category())
	}
}

func TestAllKindsSatisfyKindInterface(t *testing.T) {
	var kinds = []Kind{
		&PropertyDenied{},
		&UnknownTarget{},
		&CallStackOverflow{},
		&ActionLimitException{},
		&StackUnderrun{},
		&MalformedCode{},
		&ParserException{},
	}
	for _, k := range kinds {
		if k.Error() == "" {
			t.Errorf("%T.Error() returned empty string", k)
		}
	}
}
