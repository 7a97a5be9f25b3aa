// Package logging は設定から slog.Logger を構築します。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ogurasousui/codex-user-greeter/internal/platform/config"
)

// New は LogConfig に従って slog.Logger を生成します。w が nil の場合は標準エラー出力に書き込みます。
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("logging: parse level: %w", err)
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}
}
