package sink

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"leo/internal/hierarchy"
	"leo/internal/logging"
)

func (f *Factory) buildConsole(spec hierarchy.SinkSpec) (hierarchy.Sink, error) {
	var w io.Writer
	switch stream := strings.ToLower(spec.Config.String("stream", "stdout")); stream {
	case "stdout":
		w = f.stdout
	case "stderr":
		w = f.stderr
	default:
		return nil, fmt.Errorf("console stream %q: want stdout or stderr", stream)
	}

	format := strings.ToLower(spec.Config.String("format", "auto"))
	if format == "auto" {
		format = autoFormat(w)
	}
	h, err := logging.NewHandler(w, format, slog.LevelDebug)
	if err != nil {
		return nil, err
	}
	return NewHandlerSink(h, spec.Levels, nil), nil
}

// autoFormat selects the console layout for terminals and JSON otherwise.
func autoFormat(w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok {
		return "json"
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "console"
	}
	return "json"
}
