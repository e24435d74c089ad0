/*
Package domtext finds text patterns that may span several text nodes of an
x/net/html tree and splices replacements into the tree in place.

	      +-----------+      +----------+      +-----------+
	root  | aggregate | ---> |  search  | ---> |   walk    |
	----> | (scopes)  |      | (Match)  |      | + splice  |
	      +-----------+      +----------+      +-----+-----+
	                                                 |
	                                           +-----v-----+
	                                           |  Finder   |
	                                           | (revert)  |
	                                           +-----------+

🎯 Purpose:
- Replace matches whose text crosses inline elements such as <b> or <a>
- Keep block elements and filtered subtrees (script, style, form controls) apart
- Make every rewrite reversible through the returned Finder

🔄 Flow:
1. Text is aggregated into runs; forced-context elements open nested scopes
2. The pattern is searched in each run; match offsets are cumulative over runs
3. A single pre-order walk resolves each match into portions and splices it
4. Each splice records undo steps that Finder.Revert replays in reverse

Offsets are byte offsets into the aggregated text. Replacement text distributed
across portions is clamped to rune boundaries.

📝 Presets:
A Rewriter holds a read-only registry of named partial Options. A preset only
fills fields the caller left unset. DefaultPresets provides "prose".
*/
package domtext
