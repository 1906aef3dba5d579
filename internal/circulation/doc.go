// Package circulation implements the lending lifecycle: issuing and
// returning loans, placing and resolving reservations, and keeping a copy's
// status consistent with its active loan.
//
// The service validates preconditions before touching the store and fails
// fast with a wrapped ErrNotFound or ErrInvalidState. Store failures pass
// through wrapped so callers can classify them with errors.Is.
package circulation
