// Package guard provides ConstructorGuard, which lets commands, queries and
// value objects reject instances that bypassed their constructors.
package guard
