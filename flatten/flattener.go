// Package flatten turns nested documents into flat objects whose keys are the
// paths of the original scalar values, e.g. {"a": {"b": [1]}} becomes
// {"a.b.0": 1}.
package flatten

import (
	"sync"

	"github.com/ehsanranjbar/flatdoc/value"
)

// DefaultSeparator is the separator used between path segments unless
// configured otherwise.
const DefaultSeparator = "."

// ArrayFormatting controls how array indices are written into keys.
type ArrayFormatting struct {
	surrounded bool
	start      string
	end        string
}

// Plain writes array indices as regular segments: "a.0".
var Plain = ArrayFormatting{}

// Surrounded writes array indices between start and end with no separator:
// Surrounded("[", "]") yields "a[0]".
func Surrounded(start, end string) ArrayFormatting {
	return ArrayFormatting{surrounded: true, start: start, end: end}
}

// IsSurrounded reports whether indices are surrounded.
func (af ArrayFormatting) IsSurrounded() bool { return af.surrounded }

// Start returns the string written before an index.
func (af ArrayFormatting) Start() string { return af.start }

// End returns the string written after an index.
func (af ArrayFormatting) End() string { return af.end }

// Transform rewrites a terminal value right before it is inserted under key.
type Transform func(key string, v value.Value) (value.Value, error)

// Flattener flattens documents into single level objects.
//
// A Flattener is configured with the With* methods and frozen by its first
// Flatten call; afterwards it is safe for concurrent use and any With* call
// panics. The zero value is ready to use with the default configuration.
type Flattener struct {
	separator            string
	separatorSet         bool
	arrays               ArrayFormatting
	preserveEmptyArrays  bool
	preserveEmptyObjects bool
	transform            Transform
	maxDepth             int
	initialized          bool
	init                 sync.Once
}

// New creates a Flattener with the default configuration: "." separator,
// plain array indices, empty containers dropped.
func New() *Flattener {
	return &Flattener{
		separator:    DefaultSeparator,
		separatorSet: true,
		arrays:       Plain,
	}
}

func (f *Flattener) mustNotBeInitialized() {
	if f.initialized {
		panic("flattener already initialized")
	}
}

// WithSeparator sets the string placed between path segments.
func (f *Flattener) WithSeparator(sep string) *Flattener {
	f.mustNotBeInitialized()
	f.separator = sep
	f.separatorSet = true
	return f
}

// WithArrayFormatting sets how array indices are written.
func (f *Flattener) WithArrayFormatting(af ArrayFormatting) *Flattener {
	f.mustNotBeInitialized()
	f.arrays = af
	return f
}

// WithPreserveEmptyArrays keeps empty arrays as [] leaves instead of dropping them.
func (f *Flattener) WithPreserveEmptyArrays(preserve bool) *Flattener {
	f.mustNotBeInitialized()
	f.preserveEmptyArrays = preserve
	return f
}

// WithPreserveEmptyObjects keeps empty objects as {} leaves instead of dropping them.
func (f *Flattener) WithPreserveEmptyObjects(preserve bool) *Flattener {
	f.mustNotBeInitialized()
	f.preserveEmptyObjects = preserve
	return f
}

// WithTransform sets the transform applied to every terminal value.
func (f *Flattener) WithTransform(t Transform) *Flattener {
	f.mustNotBeInitialized()
	f.transform = t
	return f
}

// WithInferType is a shorthand for WithTransform(InferType).
func (f *Flattener) WithInferType() *Flattener {
	return f.WithTransform(InferType)
}

// WithMaxDepth limits how deep documents may be nested. Zero means no limit.
func (f *Flattener) WithMaxDepth(depth int) *Flattener {
	f.mustNotBeInitialized()
	f.maxDepth = depth
	return f
}

// Separator returns the configured separator.
func (f *Flattener) Separator() string {
	if !f.separatorSet {
		return DefaultSeparator
	}
	return f.separator
}

// ArrayFormatting returns the configured array formatting.
func (f *Flattener) ArrayFormatting() ArrayFormatting { return f.arrays }

// Flatten flattens the document v, which must be an object. The input is
// never modified.
func (f *Flattener) Flatten(v value.Value) (value.Value, error) {
	f.init.Do(func() {
		if !f.separatorSet {
			f.separator = DefaultSeparator
			f.separatorSet = true
		}
		f.initialized = true
	})

	if !v.IsObject() {
		return value.Value{}, ErrFirstLevelMustBeAnObject
	}

	acc := value.NewObject()
	if err := f.flattenObject(v, "", 0, acc); err != nil {
		return value.Value{}, err
	}
	return acc, nil
}
