// Package kernel contains the shared value objects of the domain model:
// identifiers, geographic coordinates, and postal codes. All types are
// immutable and must be created through their constructors; zero values fail
// validation.
package kernel
