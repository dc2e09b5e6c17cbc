package curriculum

import (
	"strings"
	"time"

	"github.com/sandeepkv93/stride/internal/model"
)

var (
	mwfTokens      = []string{"Mon", "Wed", "Fri", "M/W/F", "MWF"}
	tueThuTokens   = []string{"Tue", "Thu", "T/Th", "TTh"}
	saturdayTokens = []string{"Sat", "Weekend"}
)

// SelectVariant picks the session variant for date. Variant keys are free
// text, so the weekday class is matched by substring against the keys in
// declared order. No match, and every Sunday, fall back to the first variant.
func SelectVariant(week model.WeekDefinition, date time.Time) model.VariantKey {
	if len(week.Variants) == 0 {
		return ""
	}
	fallback := week.Variants[0].Key

	tokens := weekdayTokens(date.Weekday())
	if len(tokens) == 0 {
		return fallback
	}
	for _, v := range week.Variants {
		for _, tok := range tokens {
			if strings.Contains(string(v.Key), tok) {
				return v.Key
			}
		}
	}
	return fallback
}

func weekdayTokens(d time.Weekday) []string {
	switch d {
	case time.Monday, time.Wednesday, time.Friday:
		return mwfTokens
	case time.Tuesday, time.Thursday:
		return tueThuTokens
	case time.Saturday:
		return saturdayTokens
	default:
		return nil
	}
}

// IsRestDay reports whether no session is presented on date.
func IsRestDay(date time.Time) bool {
	return date.Weekday() == time.Sunday
}
