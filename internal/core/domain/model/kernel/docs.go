// Package kernel contains shared value objects used across the ordering
// domain model: identifiers and monetary amounts. Types in this package are
// immutable, created only through validating constructors, and safe to copy.
package kernel
