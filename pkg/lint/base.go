package lint

// BaseRule provides Metadata for embedding rules.
//
// Rules embed BaseRule and implement Apply (or ApplyWithProgram).
type BaseRule struct {
	meta Metadata
}

// NewBaseRule creates a BaseRule from metadata.
func NewBaseRule(meta Metadata) BaseRule {
	return BaseRule{meta: meta}
}

// Metadata returns the rule's static description.
func (r *BaseRule) Metadata() Metadata {
	return r.meta
}

// Name returns the rule name.
func (r *BaseRule) Name() string {
	return r.meta.Name
}

// Apply reports nothing. Typed rules rely on this default since the
// linter never calls Apply on them.
func (r *BaseRule) Apply(_ *WalkContext) error {
	return nil
}
