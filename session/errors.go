package session

import "errors"

var (
	// ErrDuplicateSession is returned by New while another Session is live.
	ErrDuplicateSession = errors.New("session: a session is already live")
	// ErrContextUnavailable is returned by New when the provider cannot
	// produce a drawing surface.
	ErrContextUnavailable = errors.New("session: drawing context unavailable")
	ErrInvalidSize        = errors.New("session: width and height must be greater than 0")
	ErrInvalidFrameRate   = errors.New("session: frame rate must be a finite number greater than 0")
	// ErrLoopReconfiguration is returned when the frame rate is changed
	// after the loop was installed, or when a second loop is installed.
	ErrLoopReconfiguration = errors.New("session: loop already installed")
)
