package mapgen

import (
	"os"
	"testing"

	"gloomgrid-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}
