package morph

import (
	"github.com/rs/zerolog"
)

// DefaultMaxDepth is the default nesting limit of a single conversion
const DefaultMaxDepth = 256

// Visibility controls which destination fields are populated
type Visibility string

const (
	//VisibilityAll installs every property, unknown ones with their raw value
	VisibilityAll = Visibility("all")
	//VisibilityTyped installs properties with a declared type
	VisibilityTyped = Visibility("typed")
	//VisibilityDecorated installs properties with an explicit convert tag or schema declaration
	VisibilityDecorated = Visibility("decorated")
)

// IsValid returns true for known visibility
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityAll, VisibilityTyped, VisibilityDecorated:
		return true
	}
	return false
}

const (
	assignedExcludes = 1 << iota
	assignedVisibility
	assignedSuppressErrors
	assignedDateLayout
	assignedMaxDepth
	assignedLogger
)

type (
	// Options represents effective conversion options
	Options struct {
		Excludes       Exclusions
		Visibility     Visibility
		SuppressErrors bool
		DateLayout     string
		// MaxDepth limits nesting, zero or less disables the limit
		MaxDepth int
		Logger   zerolog.Logger
		assigned int
	}

	// Option sets a single option key
	Option func(o *Options)
)

// WithExcludes replaces exclusion list, no arguments clear it
func WithExcludes(excludes ...Exclusion) Option {
	return func(o *Options) {
		o.Excludes = append(Exclusions{}, excludes...)
		o.assigned |= assignedExcludes
	}
}

// WithVisibility sets visibility
func WithVisibility(visibility Visibility) Option {
	return func(o *Options) {
		o.Visibility = visibility
		o.assigned |= assignedVisibility
	}
}

// WithSuppressErrors sets number and date error suppression
func WithSuppressErrors(flag bool) Option {
	return func(o *Options) {
		o.SuppressErrors = flag
		o.assigned |= assignedSuppressErrors
	}
}

// WithDateLayout sets date layout, go layout or ISO format i.e. YYYY-MM-DD
func WithDateLayout(layout string) Option {
	return func(o *Options) {
		o.DateLayout = layout
		o.assigned |= assignedDateLayout
	}
}

// WithMaxDepth sets nesting limit
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
		o.assigned |= assignedMaxDepth
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
		o.assigned |= assignedLogger
	}
}

func defaultOptions() *Options {
	return &Options{
		Excludes:   Exclusions{},
		Visibility: VisibilityTyped,
		MaxDepth:   DefaultMaxDepth,
		Logger:     zerolog.Nop(),
	}
}

// newOptions applies layers in ascending precedence: converter defaults, type declared, call site.
// Only keys assigned by the last two layers are inherited by nested conversions.
func newOptions(defaults, declared, call []Option) *Options {
	ret := defaultOptions()
	apply(ret, defaults)
	ret.assigned = 0
	apply(ret, declared)
	apply(ret, call)
	if ret.Excludes == nil {
		ret.Excludes = Exclusions{}
	}
	if !ret.Visibility.IsValid() {
		ret.Visibility = VisibilityTyped
	}
	return ret
}

func apply(o *Options, options []Option) {
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
}

// inherited returns options passed to nested conversions as call site options
func (o *Options) inherited() []Option {
	var ret []Option
	if o.assigned&assignedExcludes != 0 {
		ret = append(ret, WithExcludes(o.Excludes...))
	}
	if o.assigned&assignedVisibility != 0 {
		ret = append(ret, WithVisibility(o.Visibility))
	}
	if o.assigned&assignedSuppressErrors != 0 {
		ret = append(ret, WithSuppressErrors(o.SuppressErrors))
	}
	if o.assigned&assignedDateLayout != 0 {
		ret = append(ret, WithDateLayout(o.DateLayout))
	}
	if o.assigned&assignedMaxDepth != 0 {
		ret = append(ret, WithMaxDepth(o.MaxDepth))
	}
	if o.assigned&assignedLogger != 0 {
		ret = append(ret, WithLogger(o.Logger))
	}
	return ret
}
