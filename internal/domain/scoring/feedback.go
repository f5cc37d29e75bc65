package scoring

import (
	"fmt"
	"strings"
)

// Feedback is the qualitative grade attached to a score.
type Feedback int

// Feedback classes, lowest first.
const (
	TooSmall Feedback = iota
	TryAgain
	Mediocre
	Good
	Excellent
	Perfect
)

// Inclusive lower bounds of each graded class.
const (
	perfectThreshold   = 95
	excellentThreshold = 85
	goodThreshold      = 70
	mediocreThreshold  = 50
)

// Classify maps a clamped integer score to its feedback class.
// Thresholds are checked from the highest down; the first match wins.
func Classify(score int) Feedback {
	switch {
	case score >= perfectThreshold:
		return Perfect
	case score >= excellentThreshold:
		return Excellent
	case score >= goodThreshold:
		return Good
	case score >= mediocreThreshold:
		return Mediocre
	default:
		return TryAgain
	}
}

var feedbackLabels = map[Feedback]string{
	TooSmall:  "too_small",
	TryAgain:  "try_again",
	Mediocre:  "mediocre",
	Good:      "good",
	Excellent: "excellent",
	Perfect:   "perfect",
}

// String returns the stable machine label, e.g. "perfect" or "too_small".
func (f Feedback) String() string {
	if l, ok := feedbackLabels[f]; ok {
		return l
	}
	return fmt.Sprintf("feedback(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Feedback) MarshalText() ([]byte, error) {
	if _, ok := feedbackLabels[f]; !ok {
		return nil, fmt.Errorf("unknown feedback %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Feedback) UnmarshalText(b []byte) error {
	v, err := ParseFeedback(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFeedback resolves a machine label. Spaces are accepted in place of
// underscores so "try again" parses too.
func ParseFeedback(s string) (Feedback, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for f, l := range feedbackLabels {
		if l == key {
			return f, nil
		}
	}
	return TooSmall, fmt.Errorf("unknown feedback %q", s)
}

// Locale selects the language of user-facing feedback messages.
type Locale string

// Supported locales.
const (
	LocaleEnglish  Locale = "en"
	LocaleJapanese Locale = "ja"
)

var messages = map[Locale]map[Feedback]string{
	LocaleEnglish: {
		TooSmall:  "The circle is too small!",
		TryAgain:  "Let's give it another try!",
		Mediocre:  "Not bad. Try drawing it rounder!",
		Good:      "A good circle! Almost perfect!",
		Excellent: "Excellent! A nearly perfect circle!",
		Perfect:   "Perfect!",
	},
	LocaleJapanese: {
		TooSmall:  "円が小さすぎます!",
		TryAgain:  "もう一度挑戦してみましょう!",
		Mediocre:  "まあまあです。もっと丸く描いてみて!",
		Good:      "良い円です!もう少しで完璧!",
		Excellent: "素晴らしい!ほぼ完璧な円です!✨",
		Perfect:   "完璧です!🎉",
	},
}

// ParseLocale resolves a locale tag such as "en", "ja" or "ja-JP".
// Unknown tags fall back to English.
func ParseLocale(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if strings.HasPrefix(tag, string(LocaleJapanese)) {
		return LocaleJapanese
	}
	return LocaleEnglish
}

// Message returns the user-facing text for f in locale l.
func (f Feedback) Message(l Locale) string {
	table, ok := messages[l]
	if !ok {
		table = messages[LocaleEnglish]
	}
	if m, ok := table[f]; ok {
		return m
	}
	return f.String()
}
