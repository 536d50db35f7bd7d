// Package smooth chains mask application, neighbourhood averaging, the
// optional recursive filter and optional re-masking into one pipeline.
//
// A Config is validated once, before any computation. Failures are
// classified as ErrConfiguration (bad parameters, grid/mask mismatch) or
// ErrComputation (non-finite values appearing in the field); both wrap the
// underlying package error so errors.Is works for either.
package smooth
