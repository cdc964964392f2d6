// Package changelog builds release changelogs from commit history.
//
// This package implements:
//   - Classification of commit subjects by conventional-commit prefix
//   - Plain, sectioned plain-text and Markdown rendering
//   - Terminal display of classified sections
//   - Commit range selection between the two most recent tags
//
// A run is a single pass: Fetch selects and lists commits, Classify files each
// commit into exactly one category, and the renderers produce the three text
// views from the resulting Sections value.
package changelog
