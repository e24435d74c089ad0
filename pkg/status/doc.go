/*
Package status manages output storage and status tracking for numswap.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +------------+-----------+
	      |                        |
	+-----+-----+           +------+------+
	|   Files   |           |  Tracking   |
	| (atomic)  |           | (progress)  |
	+-----------+           +-------------+

🎯 Purpose:
- Classifies rewritten pages against their outputs (new, modified, unchanged)
- Writes outputs atomically, with optional backups for in-place runs
- Tracks per-file match and link counts for the summary

🔄 Flow:
1. Receives rewritten HTML from operation
2. Classifies it by checksum against the existing output
3. Writes it unless unchanged or a dry run
4. Reports progress through zerolog

🤝 Interfaces:
- FileManager: Handles file operations
- StatusReporter: Reports status changes
- FileFormatter: Formats status messages
*/
package status
