// Package filter defines the contract for pruning a specification document
// down to an allow-list of top-level sections and the path entries accepted by
// a Policy. The implementation lives in internal/openapi/filter and is
// constructed through the top-level specfilter package.
package filter
