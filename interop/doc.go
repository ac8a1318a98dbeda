// Package interop defines the message protocol spoken between the guest
// engine and foreign object systems.
//
// This package contains:
//   - Capability libraries, one Go interface per message family
//   - The Exports vtable resolved once per receiver shape
//   - The closed failure taxonomy returned by accessors
//   - Numeric fitting rules and a byte-slice buffer implementation
//   - Resolver (slow-path lookup) and CallSite (polymorphic inline cache)
//
// Collaborators implement any subset of the libraries for their values and
// register an Exporter with a Resolver. Receivers are raw Go values; the
// guest side wraps and unwraps them in package polyglot.
package interop
