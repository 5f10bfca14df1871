// Package report renders analyses for people and machines.
//
// A Printer writes a single analysis, a batch of items, or a batch summary
// as an aligned text table, JSON, or YAML. Text output colours the tier
// column with lipgloss unless NoColor is set, and truncates long task
// descriptions to a fixed display width.
//
// Schema returns JSON Schema documents for the analysis, batch result and
// config types.
package report
