package validrb

// Result is the outcome of a SafeParse call: either Success carrying the
// coerced output mapping, or Failure carrying every collected error. Both
// variants are terminal and frozen at construction.
type Result struct {
	ok     bool
	data   map[string]any
	errors ErrorList
}

// Success wraps a coerced output mapping.
func Success(data map[string]any) Result {
	if data == nil {
		data = map[string]any{}
	}
	return Result{ok: true, data: data}
}

// Failure wraps the errors collected by a failed evaluation.
func Failure(errs ErrorList) Result {
	return Result{errors: errs}
}

// IsSuccess reports whether the result carries data.
func (r Result) IsSuccess() bool { return r.ok }

// IsFailure reports whether the result carries errors.
func (r Result) IsFailure() bool { return !r.ok }

// Data returns the output mapping; nil for Failure.
func (r Result) Data() map[string]any {
	if !r.ok {
		return nil
	}
	return r.data
}

// Errors returns the collected errors; nil for Success.
func (r Result) Errors() ErrorList {
	if r.ok {
		return nil
	}
	return r.errors
}

// Map applies fn to the data of a Success. Failure absorbs the call.
func (r Result) Map(fn func(map[string]any) map[string]any) Result {
	if !r.ok {
		return r
	}
	return Success(fn(r.data))
}

// FlatMap chains a Result-producing fn over a Success. Failure absorbs the
// call, which gives short-circuiting combinator semantics without exceptions.
func (r Result) FlatMap(fn func(map[string]any) Result) Result {
	if !r.ok {
		return r
	}
	return fn(r.data)
}

// ValueOr returns the data of a Success, or fallback for a Failure.
func (r Result) ValueOr(fallback map[string]any) map[string]any {
	if !r.ok {
		return fallback
	}
	return r.data
}
