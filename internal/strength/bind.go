package strength

// Stable identifiers of the two handles a form exposes to the meter.
const (
	PasswordInputID = "password"
	MeterID         = "password-strength-meter"
)

// Source delivers value-changed notifications from a text field.
type Source interface {
	OnInput(fn func(value string))
}

// Sink displays the meter label.
type Sink interface {
	SetText(text string)
}

// Locator finds form handles by ID. It returns a nil interface when the
// element does not exist on the form.
type Locator interface {
	Source(id string) Source
	Sink(id string) Sink
}

// Styler receives the level after each label update. It is an optional
// extension point; without one only the text changes.
type Styler func(Level)

// BindOption configures Bind.
type BindOption func(*binding)

// WithStyler attaches a styling hook.
func WithStyler(s Styler) BindOption {
	return func(b *binding) {
		b.styler = s
	}
}

type binding struct {
	sink   Sink
	styler Styler
}

func (b *binding) update(password string) {
	res := Evaluate(password)
	b.sink.SetText(res.Label)
	if b.styler != nil {
		b.styler(res.Level)
	}
}

// Bind wires src to dst so every value change rewrites dst's text.
// It reports false, and does nothing, when either handle is missing.
func Bind(src Source, dst Sink, opts ...BindOption) bool {
	if src == nil || dst == nil {
		return false
	}

	b := &binding{sink: dst}
	for _, opt := range opts {
		opt(b)
	}
	src.OnInput(b.update)
	return true
}

// Attach looks up the password field and the meter on loc and binds them.
func Attach(loc Locator, opts ...BindOption) bool {
	if loc == nil {
		return false
	}
	return Bind(loc.Source(PasswordInputID), loc.Sink(MeterID), opts...)
}
