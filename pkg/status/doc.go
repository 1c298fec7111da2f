/*
Package status writes passage sources back to disk and reports outcomes.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+-----+             +-----+-----+
	|  Manager  |             | UserLogger|
	| (writes)  |             |  (pterm)  |
	+-----------+             +-----------+

🎯 Purpose:
- Writes changed passage sources atomically (temp file + rename)
- Tracks whether each write created, modified or left a file unchanged
- Turns match and replacement counts into plural-aware messages

📝 Messages:

	No matching passages found.
	1 passage matches.
	3 passages match.
	1 replacement was made in 1 passage
	4 replacements were made in 2 passages

The Formatter interface holds the wording so a caller can swap it out.
*/
package status
