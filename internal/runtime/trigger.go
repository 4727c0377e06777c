package runtime

import "github.com/gnashcore/avm1/internal/value"

// Trigger is one entry of an Object's TriggerTable (component J):
// a `watch()`-installed callback fired before a tracked property is
// actually written.
type Trigger struct {
	Callback value.ObjectID // the watcher Function
	Extra    value.Value

	executing bool // re-entrancy guard (spec 4.8)
	dead      bool // marked for lazy removal after firing
}

// watch installs or replaces the trigger for (name, ns) on this object.
func (o *Object) watch(name propKey, callback value.ObjectID, extra value.Value) {
	if o.watchers == nil {
		o.watchers = make(map[propKey]*Trigger)
	}
	o.watchers[name] = &Trigger{Callback: callback, Extra: extra}
}

// unwatch removes the trigger for (name, ns), if any, and reports
// whether one was present. A trigger currently firing (executing) is
// only marked dead; the owning fire loop performs the actual erase
// once its callback returns, matching spec 4.8's deferred-removal rule.
func (o *Object) unwatch(name propKey) bool {
	t, ok := o.watchers[name]
	if !ok {
		return false
	}
	if t.executing {
		t.dead = true
		return true
	}
	delete(o.watchers, name)
	return true
}
