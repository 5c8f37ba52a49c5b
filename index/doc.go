// Package index builds the member index: for every bindable struct type,
// the ordered binding requests its members declare.
//
// The index is built once per type reload from a host.TypeUniverse and is
// immutable until the next build. Building from the same universe always
// yields identical requests in identical order.
//
// A slice member is a Collection request whose role is the element type;
// any other member is a Single request whose role is the member type.
// Array members are recorded as Single requests on the array type and can
// never resolve.
package index
