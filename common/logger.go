package common

// Logger is the minimal leveled logging interface the services depend on.
// *logrus.Logger satisfies it; tests use a no-op implementation.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
