package tplcmp

// Extension hooks into the render lifecycle at named points. The engine
// guarantees call order (registration order at each point) and passes the
// live Instance, which extensions must treat as read-only except for
// Scope bindings in OnBeforeRender. Plugin discovery and registration
// beyond Registry.Use is out of scope here.
type Extension interface {
	// Name identifies the extension in diagnostics.
	Name() string

	// OnInputValidated fires after args and kwargs passed shape
	// validation, before any hook runs. Returning an error aborts the
	// render call.
	OnInputValidated(inst *Instance) error

	// OnBeforeRender fires just before the component's template renders.
	OnBeforeRender(inst *Instance) error

	// OnAfterRender observes the finalized output and error of a
	// component render. It cannot change either; substitution is the
	// component Finalize hook's job.
	OnAfterRender(inst *Instance, output string, err error)

	// OnSlotRendered fires after each slot occurrence resolves. filled
	// reports whether a fill matched (false means the fallback rendered).
	// Slots rendered outside any component (a free-standing template with
	// its own slot tags) are not reported; inst is never nil.
	OnSlotRendered(inst *Instance, slot string, filled bool)
}

// BaseExtension provides no-op implementations for every extension point.
// Embed it and override what you need.
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a base extension with the given name.
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string { return e.name }

func (e *BaseExtension) OnInputValidated(inst *Instance) error { return nil }

func (e *BaseExtension) OnBeforeRender(inst *Instance) error { return nil }

func (e *BaseExtension) OnAfterRender(inst *Instance, output string, err error) {}

func (e *BaseExtension) OnSlotRendered(inst *Instance, slot string, filled bool) {}

func (r *Registry) notifyInputValidated(inst *Instance) error {
	for _, ext := range r.extensions {
		if err := ext.OnInputValidated(inst); err != nil {
			return &HookError{Component: inst.Component(), Hook: "input_validated:" + ext.Name(), Err: err}
		}
	}
	return nil
}

func (r *Registry) notifyBeforeRender(inst *Instance) error {
	for _, ext := range r.extensions {
		if err := ext.OnBeforeRender(inst); err != nil {
			return &HookError{Component: inst.Component(), Hook: "before_render:" + ext.Name(), Err: err}
		}
	}
	return nil
}

func (r *Registry) notifyAfterRender(inst *Instance, output string, err error) {
	for _, ext := range r.extensions {
		ext.OnAfterRender(inst, output, err)
	}
}

func (r *Registry) notifySlotRendered(inst *Instance, slot string, filled bool) {
	for _, ext := range r.extensions {
		ext.OnSlotRendered(inst, slot, filled)
	}
}
