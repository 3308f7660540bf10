package testutil

import (
	"io"
	"os"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
)

// Test output stays quiet unless `go test -v` was used. Flags aren't parsed
// yet during package init, so os.Args is checked directly.
func init() {
	logrus.SetLevel(logrus.TraceLevel)
	if !slices.Contains(os.Args, "-test.v=true") {
		logrus.SetOutput(io.Discard)
	}
}

// DisableLogging silences the standard logger until t completes
func DisableLogging(t testing.TB) {
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	t.Cleanup(func() {
		logrus.SetOutput(previous)
	})
}
