// Package services provides the stateless domain services of the laundry workflow.
//
// The package includes:
//   - FeeCalculator: haversine distance and delivery fee for an outlet/address pair
//   - Authorizer: the per-operation role and outlet capability check
package services
