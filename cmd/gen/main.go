package main

import (
	"kaamtrack/internal/repository"
	"kaamtrack/pkg/logger"
)

func main() {
	logger.Init()
	defer logger.Sync()

	repository.RunGenerate()
}
