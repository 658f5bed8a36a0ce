// Package rules decides where each file goes.
//
// A RuleSet is an ordered list of rules compiled from configuration. Files
// are tested against the rules in order and the first match wins. Files no
// rule claims go to "<dest>/<ext>/" (or "<dest>/noext/") under the rule
// name "fallback_extension".
//
// # Rule kinds
//
//   - extension: the file extension is in a comma separated list ("jpg, png")
//   - regex: a case-insensitive regular expression is found in the file name
//   - mtime: always matches; meant for date based templates
//   - captured_date: always matches; dates come from EXIF when available
//   - hash: always matches; the first file with given content is placed by
//     the template, later copies go to "<dest>/duplicates/<hash_prefix>/"
//
// Every kind accepts an optional "when" glob tested against the file name
// before the kind logic runs.
//
// # Templates
//
// Destination templates substitute {name}, {ext}, {yyyy}, {mm}, {dd}, {hash}
// and {hash_prefix}. Dates come from the capture date when known, else from
// the modification time. "{{" and "}}" produce literal braces. Any other
// token is rejected when the rule is compiled.
//
// # Configuration
//
//	rules:
//	  - name: images
//	    type: extension
//	    pattern: "jpg, jpeg, png"
//	    target_template: "images/{ext}/{yyyy}/{mm}"
//	  - name: dedupe
//	    type: hash
//	    hash_prefix_len: 4
//	    target_template: "unique"
package rules
