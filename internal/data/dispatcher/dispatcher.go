package dispatcher

import (
	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/catalog"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	"github.com/atomicstack/popup-picker/internal/state"
)

type Result struct {
	CatalogUpdated bool
	Err            error
}

type Dispatcher struct {
	catalogs state.CatalogStore
}

func New(c state.CatalogStore) *Dispatcher {
	return &Dispatcher{catalogs: c}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		d.catalogs.SetErr(evt.Err)
		events.Catalog.Error(evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindCatalog:
		if doc, ok := evt.Data.(*catalog.Catalog); ok && doc != nil {
			d.catalogs.SetCatalog(doc)
			res.CatalogUpdated = true
		}
	}
	return res
}
