package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

// ZapAdapter implements output.LoggerPort on a sugared zap logger.
type ZapAdapter struct {
	s *zap.SugaredLogger
}

// New builds a structured logger at the given level ("debug", "info", ...).
func New(level string) (*ZapAdapter, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &ZapAdapter{s: log.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Test helper.
func NewNop() *ZapAdapter {
	return &ZapAdapter{s: zap.NewNop().Sugar()}
}

func (l *ZapAdapter) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l *ZapAdapter) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l *ZapAdapter) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l *ZapAdapter) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }

func (l *ZapAdapter) WithField(key string, value any) output.LoggerPort {
	return &ZapAdapter{s: l.s.With(key, value)}
}

func (l *ZapAdapter) Close() error {
	// Sync on stdout can fail on some platforms; the logs are already out.
	_ = l.s.Sync()
	return nil
}
