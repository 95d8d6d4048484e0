// Package faults defines the error taxonomy shared across mediasort.
//
// Sentinel markers classify failures (missing input, reserved library
// folders, link conflicts, configuration problems) so callers can decide
// between aborting an invocation and skipping a single node. Wrap attaches
// stage and operation context in a uniform shape.
package faults
