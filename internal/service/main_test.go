package service

import (
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"

	"kaamtrack/pkg/logger"
	"kaamtrack/pkg/snowflake"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	if err := snowflake.Init(1, 1); err != nil {
		fmt.Fprintln(os.Stderr, "snowflake init:", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}
