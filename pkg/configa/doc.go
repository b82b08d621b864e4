// Package configa is a thin layer over INI configuration files. A Config reads
// one file into an immutable section/option table and projects raw values
// through typed accessors: scalars, comma separated lists and whole sections
// as dictionaries, with optional integer casting and key case normalization.
//
// Concrete configuration types own typed fields and populate them with the
// Set* helpers. A required lookup that misses returns a *MissingError; the
// hosting application decides whether that ends the process.
package configa
