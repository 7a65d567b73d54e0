package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldLogger names the hierarchy logger that owns a sink.
	FieldLogger = "logger"
	// FieldOrigin names the logger an event was first logged on.
	FieldOrigin = "origin"
	// FieldEventID carries the identifier shared by every delivery of an event.
	FieldEventID = "event_id"
	// FieldLevelName carries the hierarchy level name (e.g. "verbose") when it
	// differs from the slog level label.
	FieldLevelName = "level_name"
	// FieldEventType classifies diagnostic log lines.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step for warnings and errors.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)
