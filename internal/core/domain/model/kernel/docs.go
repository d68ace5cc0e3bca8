// Package kernel provides the value objects shared by every aggregate of the
// dispatch domain.
//
// The package includes:
//   - StoreKey: the tenant identifier that scopes orders, history and broadcast groups
//   - Phone: a courier's natural key
//   - Location: a validated latitude/longitude pair
//   - UUID: an identifier for live connections
//
// All values are immutable and their zero values fail Validate, so a value
// that did not pass through its constructor is caught at the first use.
package kernel
