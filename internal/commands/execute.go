package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Week     func(WeekArgs) (Result, error)
	Next     func() (Result, error)
	Prev     func() (Result, error)
	Remind   func(RemindArgs) (Result, error)
	Toggle   func(ToggleArgs) (Result, error)
	Theme    func(ThemeArgs) (Result, error)
	Exercise func(ExerciseArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
	Reset    func(ResetArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeWeek:
		if handlers.Week == nil {
			return Result{}, missing("week")
		}
		return handlers.Week(*cmd.Week)
	case TypeNext:
		if handlers.Next == nil {
			return Result{}, missing("next")
		}
		return handlers.Next()
	case TypePrev:
		if handlers.Prev == nil {
			return Result{}, missing("prev")
		}
		return handlers.Prev()
	case TypeRemind:
		if handlers.Remind == nil {
			return Result{}, missing("remind")
		}
		return handlers.Remind(*cmd.Remind)
	case TypeNotify, TypeSet:
		if handlers.Toggle == nil {
			return Result{}, missing("toggle")
		}
		return handlers.Toggle(*cmd.Toggle)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing("theme")
		}
		return handlers.Theme(*cmd.Theme)
	case TypeExercise:
		if handlers.Exercise == nil {
			return Result{}, missing("exercise")
		}
		return handlers.Exercise(*cmd.Exercise)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing("show")
		}
		return handlers.Show(*cmd.Show)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing("reset")
		}
		return handlers.Reset(*cmd.Reset)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}
