// Package recommend answers course recommendation requests.
//
// An Engine runs a fixed cascade of tiers. The targeted tier retrieves with
// the caller's query and chips and rescores candidates against the extracted
// intent. When it yields nothing the generic tier retrieves with a broad
// query at a fixed confidence. The hardcoded tier synthesizes a small
// catalog and depends on nothing, so every valid request gets a non-empty
// answer. Collaborator failures move the cascade to the next tier; only
// invalid requests are reported as errors.
package recommend
