package termfont

import (
	"errors"
	"fmt"
)

// ErrFontNotLoaded is returned for operations on a FontKey unknown to a
// rasterizer, e.g. a key issued by a different rasterizer instance.
var ErrFontNotLoaded = errors.New("tried to use a font that hasn't been loaded")

// MissingFontError is returned if a font description could not be resolved
// to a face.
type MissingFontError struct {
	Desc FontDesc
	Err  error // underlying engine error, may be nil
}

// Error implements the error interface.
func (e *MissingFontError) Error() string {
	msg := fmt.Sprintf("couldn't find a font with %s\n\tPlease check the font configuration.", e.Desc)
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *MissingFontError) Unwrap() error {
	return e.Err
}

// MissingFont creates a MissingFontError for desc.
func MissingFont(desc FontDesc, cause error) error {
	return &MissingFontError{Desc: desc, Err: cause}
}

// IsMissingFont reports whether err is a MissingFontError.
func IsMissingFont(err error) bool {
	var mf *MissingFontError
	return errors.As(err, &mf)
}

// EngineError reports a failure of the font engine during an operation on
// an already loaded font.
type EngineError struct {
	Op  string // operation, e.g. "metrics"
	Key FontKey
	Err error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("font engine failed in %s for %s: %v", e.Op, e.Key, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
