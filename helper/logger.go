package helper

import (
	"os"

	"github.com/phuslu/log"
)

var Log log.Logger = log.Logger{
	Level: log.InfoLevel,
	Writer: &log.ConsoleWriter{
		Writer:      os.Stdout,
		ColorOutput: true,
	},
}

func SetVerbose() {
	Log.Level = log.DebugLevel
}
