// Package history provides the delivery history record: the immutable
// trace an order leaves when it reaches its terminal status.
package history
