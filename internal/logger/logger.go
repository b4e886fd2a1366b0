package logger

import (
	"log"

	"go.uber.org/zap"
)

func New() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return l
}
