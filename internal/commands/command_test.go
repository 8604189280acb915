package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/dayplan/internal/model"
)

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("add Buy milk !high")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add == nil {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Add.Description != "Buy milk" {
		t.Fatalf("description = %q, want %q", cmd.Add.Description, "Buy milk")
	}
	if cmd.Add.Priority != model.PriorityHigh {
		t.Fatalf("priority = %q, want high", cmd.Add.Priority)
	}
}

func TestParseAddDefaultsPriority(t *testing.T) {
	cmd, err := Parse("/add Walk dog")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Priority != model.PriorityMedium {
		t.Fatalf("priority = %q, want medium", cmd.Add.Priority)
	}

	cmd, err = Parse("add Walk dog !urgent")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Priority != model.PriorityMedium {
		t.Fatalf("unknown priority tag should coerce to medium, got %q", cmd.Add.Priority)
	}
}

func TestParseIDCommands(t *testing.T) {
	cases := []struct {
		input string
		typ   Type
		id    int
	}{
		{"rm 3", TypeRemove, 3},
		{"done 7", TypeDone, 7},
		{"free 2", TypeFree, 2},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.input, err)
		}
		if cmd.Type != tc.typ {
			t.Fatalf("parse %q: type = %s, want %s", tc.input, cmd.Type, tc.typ)
		}
		var got int
		switch tc.typ {
		case TypeRemove:
			got = cmd.Remove.ID
		case TypeDone:
			got = cmd.Done.ID
		case TypeFree:
			got = cmd.Free.ID
		}
		if got != tc.id {
			t.Fatalf("parse %q: id = %d, want %d", tc.input, got, tc.id)
		}
	}
}

func TestParseAt(t *testing.T) {
	cmd, err := Parse("at 4 09:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Type != TypeAt || cmd.At.ID != 4 || cmd.At.When != "09:30" {
		t.Fatalf("unexpected command: %+v", cmd.At)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		code  ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"   ", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"frobnicate", ErrCodeUnknownCommand},
		{"add", ErrCodeInvalidArgument},
		{"add !high", ErrCodeInvalidArgument},
		{"rm", ErrCodeInvalidArgument},
		{"rm abc", ErrCodeInvalidArgument},
		{"rm -1", ErrCodeInvalidArgument},
		{"at 3", ErrCodeInvalidArgument},
		{"at x 09:30", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.input)
		if err == nil {
			t.Fatalf("parse %q: expected error", tc.input)
		}
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("parse %q: expected CommandError, got %T", tc.input, err)
		}
		if cmdErr.Code != tc.code {
			t.Fatalf("parse %q: code = %s, want %s", tc.input, cmdErr.Code, tc.code)
		}
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("done 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing error, got: %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("at 2 18:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	called := false
	res, err := Execute(cmd, Handlers{
		At: func(a AtArgs) (Result, error) {
			called = true
			if a.ID != 2 || a.When != "18:00" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("handler not dispatched: %+v", res)
	}
}
