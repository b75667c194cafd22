package export

import "errors"

// ErrWriteFailed wraps every failure to produce an output file.
var ErrWriteFailed = errors.New("export write failed")
