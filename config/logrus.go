package config

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrusInstance
}

// PrintLogInfo records the outcome of a handler. Server errors are logged at
// error level, client errors at warn level.
func PrintLogInfo(client string, statusCode int, functionName string) {
	if client == "" {
		client = "Unknown"
	}

	entry := GetLogrusInstance().WithFields(logrus.Fields{
		"client":   client,
		"handler":  functionName,
		"status":   statusCode,
		"response": http.StatusText(statusCode),
	})

	switch {
	case statusCode >= fiber.StatusInternalServerError:
		entry.Error("request failed")
	case statusCode >= fiber.StatusBadRequest:
		entry.Warn("request rejected")
	default:
		entry.Info("request handled")
	}
}
