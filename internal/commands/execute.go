package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Remove func(RemoveArgs) (Result, error)
	Done   func(DoneArgs) (Result, error)
	At     func(AtArgs) (Result, error)
	Free   func(FreeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "rm handler not configured"}
		}
		return handlers.Remove(*cmd.Remove)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeAt:
		if handlers.At == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "at handler not configured"}
		}
		return handlers.At(*cmd.At)
	case TypeFree:
		if handlers.Free == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "free handler not configured"}
		}
		return handlers.Free(*cmd.Free)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
