// Package openapi exposes the public contracts for the loader, parser and
// writer stages of the filter pipeline. Implementations live under
// internal/openapi so the yaml.v3 and kin-openapi dependencies stay hidden
// from consumers; callers only see Source, Document, Format and Operation.
package openapi
