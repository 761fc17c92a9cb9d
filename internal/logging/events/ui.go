package events

import "github.com/atomicstack/popup-picker/internal/logging"

type SelectionTracer struct{}

type FilterTracer struct{}

type PaginationTracer struct{}

type DropdownTracer struct{}

type NavigationTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Selection  = SelectionTracer{}
	Filter     = FilterTracer{}
	Pagination = PaginationTracer{}
	Dropdown   = DropdownTracer{}
	Navigation = NavigationTracer{}
	Action     = ActionTracer{}
	Command    = CommandTracer{}
)

func (SelectionTracer) Changed(screen, key string) {
	logging.Trace("selection.changed", map[string]interface{}{"screen": screen, "key": key})
}

func (SelectionTracer) Restored(screen string, index int) {
	logging.Trace("selection.restored", map[string]interface{}{"screen": screen, "index": index})
}

func (FilterTracer) Changed(screen, text string) {
	logging.Trace("filter.changed", map[string]interface{}{"screen": screen, "filter": text})
}

func (FilterTracer) Cleared(screen string) {
	logging.Trace("filter.clear", map[string]interface{}{"screen": screen})
}

func (FilterTracer) Cursor(screen string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"screen": screen, "cursor": pos})
}

func (PaginationTracer) LoadMore(screen string, offset int) {
	logging.Trace("pagination.load-more", map[string]interface{}{"screen": screen, "offset": offset})
}

func (PaginationTracer) Loaded(screen string, count, total int, hasMore bool) {
	logging.Trace("pagination.loaded", map[string]interface{}{
		"screen":   screen,
		"count":    count,
		"total":    total,
		"has_more": hasMore,
	})
}

func (DropdownTracer) Open(key string) {
	logging.Trace("dropdown.open", map[string]interface{}{"key": key})
}

func (DropdownTracer) Commit(key, action string) {
	logging.Trace("dropdown.commit", map[string]interface{}{"key": key, "action": action})
}

func (DropdownTracer) Cancel(key string) {
	logging.Trace("dropdown.cancel", map[string]interface{}{"key": key})
}

func (NavigationTracer) Push(screen, key string, depth int) {
	logging.Trace("navigation.push", map[string]interface{}{"screen": screen, "key": key, "depth": depth})
}

func (NavigationTracer) Pop(screen string, depth int) {
	logging.Trace("navigation.pop", map[string]interface{}{"screen": screen, "depth": depth})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
