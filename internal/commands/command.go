package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeDone    Type = "done"
	TypeUndo    Type = "undo"
	TypeExclude Type = "exclude"
	TypeAll     Type = "all"
	TypeNone    Type = "none"
	TypeShow    Type = "show"
	TypeReport  Type = "report"
)

var aliases = map[string]Type{
	"na":    TypeExclude,
	"skip":  TypeExclude,
	"check": TypeDone,
	"copy":  TypeReport,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeNotPermitted    ErrorCode = "not_permitted"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// IndexArgs targets a single chore.
type IndexArgs struct {
	Index int
}

type ShowArgs struct {
	Partition string
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Index *IndexArgs
	Show  *ShowArgs
}

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
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeUndo, TypeExclude:
		return parseIndex(input, typ, args)
	case TypeAll, TypeNone, TypeReport:
		return Command{Type: typ, Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseIndex(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one chore index", typ)}
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid chore index: %s", args[0])}
	}
	return Command{Type: typ, Raw: raw, Index: &IndexArgs{Index: idx}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Partition: "all"}}, nil
	}
	partition := strings.ToLower(args[0])
	switch partition {
	case "all", "pending", "done", "na":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show expects one of: all, pending, done, na"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Partition: partition}}, nil
}
