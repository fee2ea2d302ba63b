package sync

// Optional tracks presence and value for patch semantics that a plain
// pointer cannot express when the target field is itself nullable:
//   - Present=false: leave the field alone
//   - Present=true, Value=nil: clear the field
//   - Present=true, Value=&v: set the field to v
type Optional[T any] struct {
	Present bool
	Value   *T
}

// Set returns an Optional carrying v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// Clear returns an Optional that clears the target field.
func Clear[T any]() Optional[T] {
	return Optional[T]{Present: true}
}
