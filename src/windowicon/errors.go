package windowicon

import "errors"

var errWindowNotFound = errors.New("window not found")
