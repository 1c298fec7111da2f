/*
Package operation runs searches and replacements over a loaded collection.

	+-------------+
	|  Operation  |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+      +-------------+
	|   search    |----->|   status    |
	|  (Pattern)  |      | (write-back)|
	+-------------+      +-------------+

🎯 Purpose:
- Turns a compiled Pattern and a passage Collection into result rows
- Replaces across the collection or in a single passage
- Records a diff per changed passage so a dry run can show what would change
- Hands changed sources to the status package for writing

🔄 Flow:
1. Search counts every passage and highlights the ones that match
2. ReplaceAll counts every passage first, then applies the replacement
3. Changes are diffed with diff-match-patch
4. Save encodes each changed source and writes it through status.Manager

🤝 Interfaces:
- Operation: anything the OperationRunner can execute
- SearchOperation / ReplaceOperation: adapters over the functions above

📝 Notes:
Options.Files is optional. Without it a replacement only edits the passages
in memory, which is how the CLI previews changes before --write.
*/
package operation
