package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/m-mizutani/emolens/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestLevelFiltering(t *testing.T) {
	testCases := []struct {
		level       string
		expectDebug bool
		expectInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"warning", false, false},
		{"error", false, false},
		{"DEBUG", true, true},
		{"", false, true},
		{"bogus", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.New(tc.level, buf)
			gt.V(t, logger).NotNil()

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Error("error message")

			output := buf.String()
			gt.Equal(t, tc.expectDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))
			gt.Equal(t, tc.expectInfo, bytes.Contains(buf.Bytes(), []byte("info message")))
			gt.S(t, output).Contains("error message")
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("debug", buf).With("component", "history")

	ctx := logging.With(context.Background(), logger)
	retrieved := logging.From(ctx)
	gt.Equal(t, retrieved, logger)

	retrieved.Info("window pruned")
	output := buf.String()
	gt.S(t, output).Contains("window pruned")
	gt.S(t, output).Contains("component")
	gt.S(t, output).Contains("history")
}

func TestFromFallsBackToDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	logging.SetDefault(logging.New("warn", buf))

	retrieved := logging.From(context.Background())
	gt.Equal(t, retrieved, logging.Default())

	retrieved.Warn("fallback in use")
	gt.S(t, buf.String()).Contains("fallback in use")
}
