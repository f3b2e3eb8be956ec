package logging

const (
	// FieldComponent is the structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType is the machine-readable event name attached to notable records.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for warnings and errors.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSessionID identifies a single launcher run.
	FieldSessionID = "session_id"
	// FieldPID is the process identifier of the supervised backend.
	FieldPID = "pid"
	// FieldAddress is the host:port the backend is expected to listen on.
	FieldAddress = "address"
	// FieldWindow is the registered window name.
	FieldWindow = "window"
)

// hiddenInfoFields are dropped from console INFO output; DEBUG shows everything.
var hiddenInfoFields = map[string]struct{}{
	FieldEventType: {},
	FieldSessionID: {},
}
