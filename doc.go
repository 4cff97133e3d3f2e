// Package main provides the entry point for the spoolkeeper migration tool.
// It applies and reverts versioned data migrations against the settings
// store of a filament-spool inventory database, most notably the reversible
// installation of the "NFC Tag ID" extra field into the spool field
// registry. The tool uses gorm for data persistence and supports the same
// database engines as the inventory service itself.
package main
