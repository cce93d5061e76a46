package logx

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns the shared JSON logger. Level comes from LOG_LEVEL (default info).
func New() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
