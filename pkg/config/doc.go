/*
Package config manages configuration parsing and validation for numswap.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |  JSON   | |    HCL    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Loads replacement pairs, rewrite options and input globs
- Points at the number-request backend when pairs come from a campaign
- Fills defaults (preset "prose", portion mode "retain", prefix "https")

🔄 Flow:
1. Reads configuration from file
2. Picks a parser by extension
3. Validates values and fills defaults
4. Hands the validated config to the operation and cmd packages

🤝 Interfaces:
- Parser: Format-specific parsing, registered with Register
*/
package config
