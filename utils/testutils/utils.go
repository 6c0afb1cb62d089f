package testutils

import (
	"bytes"
	"math"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/textautosizer/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// AssertClose checks that [got] and [exp] differ by less than 1e-3.
func AssertClose(t *testing.T, got, exp float32) {
	t.Helper()
	if math.Abs(float64(got-exp)) > 1e-3 {
		t.Fatalf("expected %g, got %g", exp, got)
	}
}

// Capture stores the warnings emitted while it is active.
type Capture struct {
	buf bytes.Buffer
}

// CaptureLogs redirects [logger.WarningLogger] until [Capture.AssertNoLogs]
// or [Capture.Logs] is called. Typical use is
//
//	defer tu.CaptureLogs().AssertNoLogs(t)
func CaptureLogs() *Capture {
	c := new(Capture)
	logger.WarningLogger.SetOutput(&c.buf)
	return c
}

// Logs stops the capture and returns the warnings, one per line.
func (c *Capture) Logs() []string {
	logger.WarningLogger.SetOutput(os.Stdout)
	var out []string
	for _, line := range strings.Split(c.buf.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// AssertNoLogs stops the capture and fails if a warning was emitted.
func (c *Capture) AssertNoLogs(t *testing.T) {
	t.Helper()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got (%d): \n%s", len(logs), strings.Join(logs, "\n"))
	}
}
