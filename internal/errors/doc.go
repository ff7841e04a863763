// Package errors provides structured error handling for questforge.
//
// Errors carry a code, a displayable message, an optional cause and
// metadata. Orchestrators return these directly; the CLI shows the
// message and maps the code to an exit status.
//
// Creating errors:
//
//	err := errors.NotFound("task not found")
//	err := errors.InvalidArgumentf("unknown difficulty: %q", d)
//
// Wrapping errors:
//
//	if err := repo.Load(ctx); err != nil {
//	    return errors.Wrap(err, "failed to load world state")
//	}
//
// Checking errors:
//
//	if errors.IsNotFound(err) { ... }
//
// Validation of inputs and configs uses the fluent builder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Store == nil {
//	    vb.RequiredField("Store")
//	}
//	return vb.Build()
package errors
