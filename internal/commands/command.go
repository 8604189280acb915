package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/dayplan/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRemove Type = "rm"
	TypeDone   Type = "done"
	TypeAt     Type = "at"
	TypeFree   Type = "free"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Description string
	Priority    model.Priority
}

type RemoveArgs struct {
	ID int
}

type DoneArgs struct {
	ID int
}

type AtArgs struct {
	ID   int
	When string
}

type FreeArgs struct {
	ID int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Remove *RemoveArgs
	Done   *DoneArgs
	At     *AtArgs
	Free   *FreeArgs
}

// Parse turns a palette line into a command. Grammar:
//
//	add <description> [!high|!medium|!low]
//	rm <id>
//	done <id>
//	at <id> <HH:MM>
//	free <id>
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRemove:
		id, err := parseID("rm", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeRemove, Raw: input, Remove: &RemoveArgs{ID: id}}, nil
	case TypeDone:
		id, err := parseID("done", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDone, Raw: input, Done: &DoneArgs{ID: id}}, nil
	case TypeAt:
		return parseAt(input, args)
	case TypeFree:
		id, err := parseID("free", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeFree, Raw: input, Free: &FreeArgs{ID: id}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	priority := model.PriorityMedium
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "!") {
			priority = model.NormalizePriority(strings.TrimPrefix(arg, "!"))
			continue
		}
		words = append(words, arg)
	}
	description := strings.TrimSpace(strings.Join(words, " "))
	if description == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a description"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Description: description, Priority: priority}}, nil
}

func parseAt(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "at requires a task id and a time"}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	return Command{Type: TypeAt, Raw: raw, At: &AtArgs{ID: id, When: args[1]}}, nil
}

func parseID(name string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", name)}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	return id, nil
}
