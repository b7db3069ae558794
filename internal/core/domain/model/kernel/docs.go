// Package kernel provides the domain primitives shared by every aggregate of the
// laundry workflow engine.
//
// The package includes:
//   - UUID: identifier value object for orders, stages, jobs, requests, employees and outlets
//   - GeoPoint: a validated latitude/longitude pair with haversine distance
//
// Both are immutable values whose zero form fails Validate.
package kernel
