// Package id provides unique identifier generation utilities.
//
// This is the canonical source for ID generation across the labkit
// codebase. It provides two ID formats:
//
//   - Suffix: short random hex strings for uniquifying resource names
//     (projects, probes, generated users) across workshop runs
//   - Request: UUID v4 correlation IDs stamped on outbound API requests
//
// All ID generation uses crypto/rand for secure randomness.
package id
