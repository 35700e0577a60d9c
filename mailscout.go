// Package mailscout harvests contact email addresses from websites.
// It fetches a page and a fixed set of likely contact pages, scans the
// markup with several independent extraction strategies, validates and
// deduplicates the candidates, and tracks batch jobs over URL lists.
//
// This package contains domain types, interfaces and pure domain functions
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, http/).
package mailscout
