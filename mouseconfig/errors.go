package mouseconfig

import "github.com/pkg/errors"

// ErrIncomplete is wrapped by every field-required validation failure. It
// is a build-time-only failure: Config is validated once, before any
// component is constructed from it, and never resurfaces at runtime.
var ErrIncomplete = errors.New("incomplete configuration")

// NewFieldRequiredError reports that a required configuration field was left
// at its zero value, named after rdk's
// `utils.NewConfigValidationFieldRequiredError` constructor.
func NewFieldRequiredError(field string) error {
	return errors.Wrapf(ErrIncomplete, "%s is required", field)
}
