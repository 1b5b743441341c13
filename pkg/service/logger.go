package service

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const logPrefix = "machi"

// NewLogger returns a logger writing to the file at logPath. The terminal client owns
// stdout, so with no path configured logs are discarded rather than printed.
func NewLogger(logPath string, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var w io.WriteCloser = nopCloser{io.Discard}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          logPrefix,
	})
	return logger, w, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
