package logger

import (
	"log"
	"os"
)

// Logger is the pipeline's structured logging interface.
type Logger interface {
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// StageLogger implements Logger with stdlib logging, prefixed per level.
// Info/Warn go to stdout so stage progress can be piped; errors go to
// stderr.
type StageLogger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a StageLogger.
func New() Logger {
	return &StageLogger{
		infoLogger:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime),
		warnLogger:  log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime),
		errorLogger: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime),
	}
}

func (l *StageLogger) Info(msg string, fields ...interface{}) {
	logWith(l.infoLogger, msg, fields)
}

func (l *StageLogger) Warn(msg string, fields ...interface{}) {
	logWith(l.warnLogger, msg, fields)
}

func (l *StageLogger) Error(msg string, err error, fields ...interface{}) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	logWith(l.errorLogger, msg, fields)
}

func (l *StageLogger) Fatal(msg string, err error, fields ...interface{}) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	if len(fields) > 0 {
		l.errorLogger.Fatalf("%s %v", msg, fields)
	}
	l.errorLogger.Fatal(msg)
}

func logWith(l *log.Logger, msg string, fields []interface{}) {
	if len(fields) > 0 {
		l.Printf("%s %v", msg, fields)
		return
	}
	l.Print(msg)
}
