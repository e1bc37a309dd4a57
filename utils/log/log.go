package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	isDevelopment := os.Getenv("NEWSAGG_ENV") != "prod"
	if !isDevelopment {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	service := os.Getenv("NEWSAGG_SERVICE")
	if service == "" {
		service = "api_server"
	}

	Log = logger.WithFields(
		logrus.Fields{"service": service, "is_development": isDevelopment},
	)
}
