package relay

import "errors"

var ErrNoEvents = errors.New("no events")
