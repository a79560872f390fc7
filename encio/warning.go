package encio

import (
	"log/slog"
	"os"
)

// Warnings is where warnings are sent to.
// Decoding continues past some conditions that are legal but worrying, such as an unrecognised magic number;
// they are reported here instead of being silently put up with.
var Warnings = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
