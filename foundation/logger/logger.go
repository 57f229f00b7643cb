// Package logger builds the zap logger shared by the call process.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New writes JSON logs to <logDirectory>/<group>/<actor>.log. An empty
// logDirectory logs to stdout.
func New(logDirectory string, group string, actor string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = false
	config.InitialFields = map[string]any{
		"actor": actor,
	}

	if logDirectory != "" {
		groupDirectory := filepath.Join(logDirectory, group)
		logPath := filepath.Join(groupDirectory, actor+".log")

		if _, err := os.Stat(groupDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(groupDirectory, os.ModePerm); err != nil {
				return nil, err
			}
		}

		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return nil, err
		}
		f.Close()

		config.OutputPaths = []string{logPath}
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
