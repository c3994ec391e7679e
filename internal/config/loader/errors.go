package loader

import "errors"

// ErrUnsupportedFormat indicates a configuration file with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")
