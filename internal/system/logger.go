package system

// Logger is the component-tagged logger used across the binary.
type Logger interface {
	Infof(component, format string, args ...interface{})
	Errorf(component, format string, args ...interface{})
}

func logf(l Logger, component, format string, args ...interface{}) {
	if l != nil {
		l.Infof(component, format, args...)
	}
}

func errorf(l Logger, component, format string, args ...interface{}) {
	if l != nil {
		l.Errorf(component, format, args...)
	}
}
