package events

import "github.com/atomicstack/popup-picker/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Finish(key, action string, cancelled bool) {
	logging.Trace("app.finish", map[string]interface{}{"key": key, "action": action, "cancelled": cancelled})
}
