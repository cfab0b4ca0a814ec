// Package errs provides the standardized error types for the logistics core.
//
// Two layers live here:
//
//   - Validation errors following a sentinel + struct + constructor-with-cause
//     pattern (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError). Each type unwraps to its sentinel so callers
//     classify with errors.Is.
//
//   - DomainError, a code-plus-message failure result for the public core
//     operations (road edits, planning, job reports). Codes are stable strings
//     such as "road.out_of_bounds" or "transport.no_suppliers" that the UI and
//     HTTP layers map to notifications; unexpected internal errors are wrapped
//     under "system.unexpected_exception".
//
// Core operations return these errors rather than panicking; recoverable
// conditions (a supplier exhausted mid-plan, a partial allocation) are not
// errors at all and are expressed in result values instead.
package errs
