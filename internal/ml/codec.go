// Package ml holds the inference side of the application: label codecs,
// the classifier contract, and the loader for externally trained model
// artifacts.
package ml

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory indicates a categorical value that was not part of the
// training-time category set. This is a user error, not a crash.
var ErrUnknownCategory = errors.New("unknown category")

// LabelCodec maps the categorical string values of one feature to the integer
// codes its model was trained with, and back. The class list is fixed at load
// time and read-only afterwards.
type LabelCodec struct {
	classes []string
	index   map[string]int
}

// NewLabelCodec builds a codec over an ordered class list. The order must
// match the training-time encoding.
func NewLabelCodec(classes []string) (*LabelCodec, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("label codec requires at least one class")
	}
	index := make(map[string]int, len(classes))
	for i, name := range classes {
		if name == "" {
			return nil, fmt.Errorf("label codec class %d is empty", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("label codec class %q appears twice", name)
		}
		index[name] = i
	}
	return &LabelCodec{classes: append([]string(nil), classes...), index: index}, nil
}

// Encode returns the integer code for a category name. Unknown names yield
// ErrUnknownCategory.
func (c *LabelCodec) Encode(name string) (int, error) {
	code, ok := c.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return code, nil
}

// Decode returns the category name for a code. Codes outside the class list
// indicate a model/codec mismatch, which is a programmer error rather than a
// user error.
func (c *LabelCodec) Decode(code int) (string, error) {
	if code < 0 || code >= len(c.classes) {
		return "", fmt.Errorf("code %d out of range for codec with %d classes", code, len(c.classes))
	}
	return c.classes[code], nil
}

// Options returns the full known category set in encoding order. The caller
// receives a copy; the codec stays immutable.
func (c *LabelCodec) Options() []string {
	return append([]string(nil), c.classes...)
}
