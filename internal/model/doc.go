// Package model defines the data types shared across the credscan
// analysis pipeline: credential records, relation classifications,
// aggregate summaries, and the per-run report.
package model
