package version

import "errors"

var (
	ErrAmbiguousBound = errors.New("ambiguous bound")
	ErrBadRange       = errors.New("bad range")
	ErrParse          = errors.New("cannot parse version")
)
