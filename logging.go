package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger tags every line with the goroutine that wrote it
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintf(format, v...))
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintln(v...))
}

// setupLogging sends the standard logger to a rotating log file, and to
// stdout as well unless something else owns the terminal
func setupLogging(settings configSettings, toStdout bool) io.Closer {
	logFile := settings.GetString(sLogFile)
	if logFile == "" {
		if toStdout {
			log.SetOutput(os.Stdout)
		} else {
			// no file and the terminal is taken
			log.SetOutput(io.Discard)
		}
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	if toStdout {
		log.SetOutput(io.MultiWriter(os.Stdout, lj))
	} else {
		log.SetOutput(lj)
	}
	return lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
