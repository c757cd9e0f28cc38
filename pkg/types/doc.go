// Package types defines the fleet domain entities, their status domains,
// partial-update structs, and the standard errors shared by the storage
// layer and the API facade.
package types
