package widget

import (
	"golang.org/x/exp/slog"
)

// Renderer reflects session state onto a UI. Controllers call it from the loop
// only; implementations hold no widget logic.
type Renderer interface {
	ShowScreen(screen string)
	SetSubmitEnabled(control string, enabled bool)
	HighlightFields(fields []string)
	ShowError(message string)
	ShowProgress(count, threshold int)
	ShowResult(prize string)
	ClearResult()
}

// LogRenderer writes every UI update to a structured logger.
type LogRenderer struct {
	Logger *slog.Logger
	Widget string
}

var _ Renderer = (*LogRenderer)(nil)

// NewLogRenderer returns a renderer that logs under the given widget name.
func NewLogRenderer(logger *slog.Logger, widgetName string) *LogRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRenderer{Logger: logger.With("widget", widgetName), Widget: widgetName}
}

func (r *LogRenderer) ShowScreen(screen string) {
	r.Logger.Info("screen", "name", screen)
}

func (r *LogRenderer) SetSubmitEnabled(control string, enabled bool) {
	r.Logger.Debug("control", "name", control, "enabled", enabled)
}

func (r *LogRenderer) HighlightFields(fields []string) {
	r.Logger.Warn("invalid fields", "fields", fields)
}

func (r *LogRenderer) ShowError(message string) {
	r.Logger.Error("error modal", "message", message)
}

func (r *LogRenderer) ShowProgress(count, threshold int) {
	r.Logger.Info("progress", "count", count, "threshold", threshold)
}

func (r *LogRenderer) ShowResult(prize string) {
	r.Logger.Info("prize revealed", "prize", prize)
}

func (r *LogRenderer) ClearResult() {
	r.Logger.Debug("result cleared")
}
