package api

// Alert is a user-facing notification produced by the pipeline when a
// request error propagates past its handler.
type Alert struct {
	// Type is currently always "error".
	Type string

	// Message is the category-derived user-facing text.
	Message string

	// Detail is the raw technical detail (status, URL, method, decoded
	// errors). Only populated in debug-enabled deployments; the UI decides
	// whether to expose a control revealing it.
	Detail string
}

// AlertReporter is the pipeline's view of the alert surface. Show returns a
// handle that can later be passed to Dismiss; Dismiss with an unknown or
// already-dismissed handle is a no-op.
type AlertReporter interface {
	Show(alert Alert) int
	Dismiss(id int)
}
