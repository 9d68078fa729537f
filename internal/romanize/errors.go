package romanize

import "errors"

// ErrInvalidKanaKey is returned when a kana table key is not one or two characters long.
var ErrInvalidKanaKey = errors.New("kana table key must be one or two characters")
