package logger

// Multi returns a Logger that fans every message out to each of the
// given loggers. Level filtering stays with the individual loggers.
func Multi(loggers ...Logger) Logger {
	return multiLogger(loggers)
}

type multiLogger []Logger

func (m multiLogger) Tracef(format string, args ...any) {
	for _, l := range m {
		l.Tracef(format, args...)
	}
}

func (m multiLogger) Debugf(format string, args ...any) {
	for _, l := range m {
		l.Debugf(format, args...)
	}
}

func (m multiLogger) Infof(format string, args ...any) {
	for _, l := range m {
		l.Infof(format, args...)
	}
}

func (m multiLogger) Warnf(format string, args ...any) {
	for _, l := range m {
		l.Warnf(format, args...)
	}
}

func (m multiLogger) Errorf(format string, args ...any) {
	for _, l := range m {
		l.Errorf(format, args...)
	}
}
