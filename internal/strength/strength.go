package strength

import "unicode/utf8"

const (
	// MinLength is the shortest password that escapes the "too short" label.
	MinLength = 8

	// StrongLength is the length from which the base score is highest.
	StrongLength = 12

	// emptyScore marks the empty password; no other rule applies to it.
	emptyScore = -1
)

// Labels shown in the meter.
const (
	LabelPrefix     = "Strength: "
	LabelTooShort   = LabelPrefix + "Weak (too short)"
	LabelWeak       = LabelPrefix + "Weak"
	LabelMedium     = LabelPrefix + "Medium"
	LabelStrong     = LabelPrefix + "Strong"
	LabelVeryStrong = LabelPrefix + "Very Strong"
)

// Level classifies the final label. It exists for the optional styling hook;
// the label text never depends on it.
type Level int

const (
	LevelNone Level = iota
	LevelTooShort
	LevelWeak
	LevelMedium
	LevelStrong
	LevelVeryStrong
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelTooShort:
		return "too-short"
	case LevelWeak:
		return "weak"
	case LevelMedium:
		return "medium"
	case LevelStrong:
		return "strong"
	case LevelVeryStrong:
		return "very-strong"
	default:
		return "none"
	}
}

// Result is the outcome of scoring one password.
type Result struct {
	Score int
	Label string
	Level Level
}

// lengthBand is the length-derived part of the score.
type lengthBand struct {
	score int
	label string
}

var (
	bandShort  = lengthBand{score: 1, label: "Weak (too short)"}
	bandMedium = lengthBand{score: 2, label: "Medium"}
	bandLong   = lengthBand{score: 3, label: "Strong"}
)

// classPredicates each add one point when satisfied.
var classPredicates = []func(string) bool{
	HasUpper,
	HasLower,
	HasDigit,
	HasSpecial,
}

// Evaluate scores password and picks its label. Length is counted in runes,
// so a character outside the Basic Multilingual Plane (an emoji, say) counts
// once. A browser's String.length would count it twice.
func Evaluate(password string) Result {
	n := utf8.RuneCountInString(password)
	if n == 0 {
		return Result{Score: emptyScore, Label: "", Level: LevelNone}
	}

	band := bandFor(n)
	score := band.score
	for _, pred := range classPredicates {
		if pred(password) {
			score++
		}
	}

	res := Result{Score: score}
	switch {
	case score < 2:
		res.Label, res.Level = LabelPrefix+band.label, LevelTooShort
	case score <= 4:
		res.Label, res.Level = LabelWeak, LevelWeak
	case score <= 6:
		res.Label, res.Level = LabelMedium, LevelMedium
	case score == 7:
		res.Label, res.Level = LabelStrong, LevelStrong
	default:
		res.Label, res.Level = LabelVeryStrong, LevelVeryStrong
	}

	// Short passwords are always reported as too short, whatever the band said.
	if n > 0 && n < MinLength {
		res.Label, res.Level = LabelTooShort, LevelTooShort
	}
	return res
}

// Score returns the raw tally for password, -1 when it is empty.
func Score(password string) int {
	return Evaluate(password).Score
}

// Label returns the meter text for password. Empty input yields "".
func Label(password string) string {
	return Evaluate(password).Label
}

func bandFor(n int) lengthBand {
	switch {
	case n < MinLength:
		return bandShort
	case n < StrongLength:
		return bandMedium
	default:
		return bandLong
	}
}
