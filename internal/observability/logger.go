package observability

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging sends the standard logger to stderr and, when path is set, to a
// rotating file as well. The returned closer flushes the file.
func SetupLogging(path string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	if path == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return file
}
