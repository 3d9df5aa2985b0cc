// Package reference provides the read-only reference data the ordering workflow
// resolves user input against: vendors and named campus locations.
//
// Reference entities are keyed by a numeric identifier and a canonical lowercase
// name. The ordering workflow never creates or mutates them.
package reference
