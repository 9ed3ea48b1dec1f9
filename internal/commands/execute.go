package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Done    func(IndexArgs) (Result, error)
	Undo    func(IndexArgs) (Result, error)
	Exclude func(IndexArgs) (Result, error)
	All     func() (Result, error)
	None    func() (Result, error)
	Show    func(ShowArgs) (Result, error)
	Report  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Index)
	case TypeUndo:
		if handlers.Undo == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Undo(*cmd.Index)
	case TypeExclude:
		if handlers.Exclude == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Exclude(*cmd.Index)
	case TypeAll:
		if handlers.All == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.All()
	case TypeNone:
		if handlers.None == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.None()
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	case TypeReport:
		if handlers.Report == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Report()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
