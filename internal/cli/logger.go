package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes to w, or to a rotated file when logFile is set.
func newLogger(w io.Writer, logFile string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if logFile != "" {
		// 配置日志输出到lumberjack用于日志轮转
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    20, // 单位为MB，20M
			MaxBackups: 3,
			LocalTime:  true,
			Compress:   true,
		})
	} else {
		log.SetOutput(w)
	}

	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
