// Package vm implements the guest object model seen by the interop
// protocol.
//
// This package contains:
//   - Objects, classes and the bootstrapped core classes
//   - The guest exception hierarchy, including one class per interop failure
//   - Foreign boxes for values owned by other object systems
//   - The native library exporting the protocol for guest objects
package vm
