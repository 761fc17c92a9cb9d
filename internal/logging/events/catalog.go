package events

import "github.com/atomicstack/popup-picker/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Loaded(path string, entries int) {
	logging.Trace("catalog.loaded", map[string]interface{}{"path": path, "entries": entries})
}

func (CatalogTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("catalog.error", map[string]interface{}{"error": err.Error()})
}

func (CatalogTracer) Resync(screen string, mode string) {
	logging.Trace("catalog.resync", map[string]interface{}{"screen": screen, "mode": mode})
}
