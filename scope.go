package tplcmp

// Scope is an ordered stack of variable frames. Lookups search from the
// deepest frame outward, so inner frames shadow outer ones.
//
// Scopes are cheap values: Extend shares the parent frames rather than
// copying them, which is safe because frames are never written after a
// render begins (BeforeRender hooks run before the component's template
// does, and only touch the instance's own frame).
type Scope struct {
	frames []map[string]any
}

// NewScope builds a scope from outermost to innermost frames.
func NewScope(frames ...map[string]any) *Scope {
	s := &Scope{frames: make([]map[string]any, 0, len(frames)+1)}
	for _, f := range frames {
		if f != nil {
			s.frames = append(s.frames, f)
		}
	}
	return s
}

// Extend returns a child scope: the receiver's stack plus one new frame.
// This is inherited-mode propagation - ambient variables from enclosing
// frames stay visible unless shadowed by the new frame.
func (s *Scope) Extend(frame map[string]any) *Scope {
	child := &Scope{frames: make([]map[string]any, len(s.frames), len(s.frames)+1)}
	copy(child.frames, s.frames)
	if frame != nil {
		child.frames = append(child.frames, frame)
	}
	return child
}

// Isolated returns a scope containing exactly one frame. This is
// isolated-mode propagation - no ambient variable is visible.
func Isolated(frame map[string]any) *Scope {
	if frame == nil {
		frame = map[string]any{}
	}
	return &Scope{frames: []map[string]any{frame}}
}

// Lookup searches the frames deepest-first for name.
func (s *Scope) Lookup(name string) (any, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes a binding into the deepest frame. Used by BeforeRender hooks
// to adjust the scope a component is about to render with; the frame being
// written is always the instance's own, never a shared ancestor frame.
func (s *Scope) Set(name string, value any) {
	if len(s.frames) == 0 {
		s.frames = append(s.frames, map[string]any{})
	}
	s.frames[len(s.frames)-1][name] = value
}

// Depth returns the number of frames in the stack.
func (s *Scope) Depth() int { return len(s.frames) }
