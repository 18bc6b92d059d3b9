// Package style implements the pure decision functions consulted by the
// formatter: quote choice, identifier naming conventions and compact-table
// eligibility. Every function is total over its input and has no state.
package style
