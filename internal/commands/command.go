package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/stride/internal/model"
)

type Type string

const (
	TypeWeek     Type = "week"
	TypeNext     Type = "next"
	TypePrev     Type = "prev"
	TypeRemind   Type = "remind"
	TypeNotify   Type = "notify"
	TypeSet      Type = "set"
	TypeTheme    Type = "theme"
	TypeExercise Type = "exercise"
	TypeShow     Type = "show"
	TypeReset    Type = "reset"
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

// Toggle names accepted by "set".
const (
	ToggleNotifications  = "notifications"
	ToggleSound          = "sound"
	ToggleHighContrast   = "high_contrast"
	ToggleReduceMotion   = "reduce_motion"
	ToggleExtendedBreaks = "extended_breaks"
	ToggleSkipComplex    = "skip_complex"
)

var toggleAliases = map[string]string{
	"notifications":   ToggleNotifications,
	"notify":          ToggleNotifications,
	"sound":           ToggleSound,
	"contrast":        ToggleHighContrast,
	"high_contrast":   ToggleHighContrast,
	"motion":          ToggleReduceMotion,
	"reduce_motion":   ToggleReduceMotion,
	"breaks":          ToggleExtendedBreaks,
	"extended_breaks": ToggleExtendedBreaks,
	"complex":         ToggleSkipComplex,
	"skip_complex":    ToggleSkipComplex,
}

// Views accepted by "show".
const (
	ShowToday    = "today"
	ShowSession  = "session"
	ShowProgress = "progress"
	ShowSettings = "settings"
)

type WeekArgs struct {
	Number int
}

type RemindArgs struct {
	Time string
}

type ToggleArgs struct {
	Name string
	On   bool
}

type ThemeArgs struct {
	Theme model.Theme
}

type ExerciseArgs struct {
	Type model.ExerciseType
}

type ShowArgs struct {
	Subject string
}

type ResetArgs struct {
	Target string
}

type Command struct {
	Type     Type
	Raw      string
	Week     *WeekArgs
	Remind   *RemindArgs
	Toggle   *ToggleArgs
	Theme    *ThemeArgs
	Exercise *ExerciseArgs
	Show     *ShowArgs
	Reset    *ResetArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
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
	case TypeWeek:
		return parseWeek(input, args)
	case TypeNext, TypePrev:
		return Command{Type: Type(head), Raw: input}, nil
	case TypeRemind:
		return parseRemind(input, args)
	case TypeNotify:
		on, err := parseOnOff("notify", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeNotify, Raw: input, Toggle: &ToggleArgs{Name: ToggleNotifications, On: on}}, nil
	case TypeSet:
		return parseSet(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeExercise:
		return parseExercise(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeReset:
		return parseReset(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseWeek(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "week requires a number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("week number %q is not an integer", args[0])}
	}
	if n < model.FirstWeek || n > model.LastWeek {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: (&model.OutOfRangeError{Week: n}).Error()}
	}
	return Command{Type: TypeWeek, Raw: raw, Week: &WeekArgs{Number: n}}, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remind requires a time as HH:MM"}
	}
	hhmm := args[0]
	// a single-digit hour is padded so "7:05" reads as "07:05"
	if h, _, ok := strings.Cut(hhmm, ":"); ok && len(h) == 1 {
		hhmm = "0" + hhmm
	}
	if _, _, err := model.ParseClock(hhmm); err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{Time: hhmm}}, nil
}

func parseSet(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires a preference and on|off"}
	}
	name, ok := toggleAliases[strings.ToLower(args[0])]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown preference: %s", args[0])}
	}
	on, err := parseOnOff("set "+name, args[1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeSet, Raw: raw, Toggle: &ToggleArgs{Name: name, On: on}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires system|light|dark"}
	}
	theme := model.Theme(strings.ToLower(args[0]))
	if !theme.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", args[0])}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
}

func parseExercise(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "exercise requires a type"}
	}
	kind := model.ExerciseType(strings.ToLower(strings.Join(args, "_")))
	if !kind.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown exercise type: %s", strings.Join(args, " "))}
	}
	return Command{Type: TypeExercise, Raw: raw, Exercise: &ExerciseArgs{Type: kind}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires today|session|progress|settings"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case ShowToday, ShowSession, ShowProgress, ShowSettings:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", args[0])}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseReset(raw string, args []string) (Command, error) {
	if len(args) != 1 || strings.ToLower(args[0]) != "progress" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reset supports only: reset progress"}
	}
	return Command{Type: TypeReset, Raw: raw, Reset: &ResetArgs{Target: "progress"}}, nil
}

func parseOnOff(what string, args []string) (bool, error) {
	if len(args) != 1 {
		return false, &CommandError{Code: ErrCodeInvalidArgument, Message: what + " requires on|off"}
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s expects on|off, got %s", what, args[0])}
	}
}
