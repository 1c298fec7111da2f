// Package config loads search and replace jobs for passages.
//
//	            +-------------+
//	            |   Config    |
//	            |    (Job)    |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+-----+ +----+----+ +-----+-----+
//	|   YAML    | |  JSON   | |    HCL    |
//	|  Parser   | | Parser  | |  Parser   |
//	+-----------+ +---------+ +-----------+
//
// 🎯 Purpose:
// - Reads a job file: the query, an optional replacement and the source globs
// - Picks a parser from the file extension through the parser registry
// - Validates the job and fills in defaults before anything is loaded
//
// 🔄 Flow:
// 1. Load reads the file and hands it to the matching Parser
// 2. Relative base_dir values are resolved against the config file
// 3. Validate checks globs, format, timeout and concurrency, and compiles the
//    query once so invalid regex text is reported before any passage is read
//
// 📝 Example (YAML):
//
//	query:
//	  pattern: "cat"
//	  include_names: true
//	replacement: "dog"
//	sources:
//	  - "story/**/*.twee"
//	ignore_patterns:
//	  - "**/drafts/**"
//	match_timeout: 250ms
//
// 📝 Example (HCL):
//
//	query {
//	  pattern       = "c[aeiou]t"
//	  regex         = true
//	  include_names = true
//	}
//	replacement = "dog"
//	sources     = ["story/**/*.twee"]
package config
