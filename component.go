package tplcmp

import (
	"context"
	"fmt"
)

// BeforeRenderFunc runs after inputs are validated and before the
// component's template renders. It may inspect the instance and Set
// bindings on its scope; it must not touch the compiled node tree.
type BeforeRenderFunc func(ctx context.Context, inst *Instance) error

// FinalizeFunc is the second phase of the render contract. It receives
// the rendered output and any error from the first phase - including a
// descendant component's failure - and returns what the render call
// should actually produce. Returning a nil error with substitute output
// swallows the failure; error-boundary components are just a Finalize
// hook.
type FinalizeFunc func(ctx context.Context, inst *Instance, output string, err error) (string, error)

// Media lists the companion assets a component ships. The engine records
// media on the definition and exposes which components rendered via the
// manifest; discovery, deduplication, and injection of the assets belong
// to an external pass.
type Media struct {
	JS  []string
	CSS []string
}

// Definition is a registered component: a name, a compiled template, and
// optional props shape, scope mode, hooks, and media. Definitions are
// built once and shared read-only across renders.
type Definition struct {
	Name     string
	Template *Template
	Props    *PropsSpec
	Media    Media

	// Isolated makes every invocation of this component see only its
	// explicit arguments, as if the caller always passed the "only" flag.
	Isolated bool

	BeforeRender BeforeRenderFunc
	Finalize     FinalizeFunc
}

// NewComponent compiles source and returns a component definition.
//
//	card, err := tplcmp.NewComponent("card", cardSource)
func NewComponent(name, source string) (*Definition, error) {
	t, err := Compile(name, source)
	if err != nil {
		return nil, err
	}
	return &Definition{Name: name, Template: t}, nil
}

// MustComponent is NewComponent, panicking on compile errors. Intended
// for package-level component declarations.
func MustComponent(name, source string) *Definition {
	d, err := NewComponent(name, source)
	if err != nil {
		panic(fmt.Sprintf("tplcmp: compile %q: %v", name, err))
	}
	return d
}

// WithProps declares the component's input shape.
func (d *Definition) WithProps(spec *PropsSpec) *Definition {
	d.Props = spec
	return d
}

// Isolate switches the component to isolated scope mode.
func (d *Definition) Isolate() *Definition {
	d.Isolated = true
	return d
}

// OnBeforeRender installs the pre-render hook.
func (d *Definition) OnBeforeRender(f BeforeRenderFunc) *Definition {
	d.BeforeRender = f
	return d
}

// OnFinalize installs the two-phase finalize hook.
func (d *Definition) OnFinalize(f FinalizeFunc) *Definition {
	d.Finalize = f
	return d
}

// WithMedia attaches companion asset references.
func (d *Definition) WithMedia(m Media) *Definition {
	d.Media = m
	return d
}

func (d *Definition) validateProps(inst *Instance) error {
	if d.Props == nil {
		return nil
	}
	return d.Props.validate(d.Name, inst)
}

// PropsSpec declares a component's expected keyword arguments. Validation
// failures are structured *ValidationError values naming the offending
// field, not generic errors.
type PropsSpec struct {
	fields map[string]propField
	order  []string
}

type propField struct {
	required bool
	check    func(any) error
}

// NewPropsSpec returns an empty props declaration.
func NewPropsSpec() *PropsSpec {
	return &PropsSpec{fields: map[string]propField{}}
}

// Require declares a keyword that every invocation must supply.
func (p *PropsSpec) Require(name string) *PropsSpec {
	return p.declare(name, propField{required: true})
}

// Optional declares a keyword that invocations may supply.
func (p *PropsSpec) Optional(name string) *PropsSpec {
	return p.declare(name, propField{})
}

// Check attaches a validator to a declared keyword. The validator's error
// message is surfaced in the ValidationError.
func (p *PropsSpec) Check(name string, check func(any) error) *PropsSpec {
	f, ok := p.fields[name]
	if !ok {
		return p.declare(name, propField{check: check})
	}
	f.check = check
	p.fields[name] = f
	return p
}

func (p *PropsSpec) declare(name string, f propField) *PropsSpec {
	if _, exists := p.fields[name]; !exists {
		p.order = append(p.order, name)
	}
	p.fields[name] = f
	return p
}

func (p *PropsSpec) validate(component string, inst *Instance) error {
	for _, name := range p.order {
		f := p.fields[name]
		v, ok := inst.Kwarg(name)
		if !ok {
			if f.required {
				return &ValidationError{Component: component, Field: name, Msg: "required prop missing"}
			}
			continue
		}
		if f.check != nil {
			if err := f.check(v); err != nil {
				return &ValidationError{Component: component, Field: name, Msg: err.Error()}
			}
		}
	}
	for _, name := range inst.KwargNames() {
		if _, declared := p.fields[name]; !declared {
			return &ValidationError{Component: component, Field: name, Msg: "unexpected prop"}
		}
	}
	return nil
}
