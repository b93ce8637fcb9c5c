package services_test

import (
	"github.com/cpghub/cpghub-api/pkg/logger"
)

func init() {
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development"})
}
