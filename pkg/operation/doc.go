/*
Package operation runs number swaps over HTML files on disk.

	+-------------+     +-------------+     +-------------+
	|  Discover   | --> |    Swap     | --> |   Status    |
	| (doublestar)|     | (per page)  |     | (classify,  |
	+-------------+     +-------------+     |  write)     |
	                                        +-------------+

🎯 Purpose:
- Expands input globs and drops ignored pages
- Parses each page, applies every replacement pair, renders it back
- Hands the result to the status package, which decides whether to write

🔄 Flow:
1. ResolvePairs gathers pairs from the config and, optionally, the remote
2. Discover lists the pages relative to the base directory
3. The runner visits every page, concurrently when the config asks for async
4. Pages are written to the output directory, or in place

⚡ Notes:
- A page with no match keeps its original bytes; only changed pages are re-rendered
- A failing pair is recorded on the page and does not stop the run
- A failing page is tracked as failed; the run reports the count at the end

🔍 Example:

	pairs, source, err := operation.ResolvePairs(ctx, cfg, client)
	op := operation.NewRewriteOperation(operation.Options{Config: cfg, Pairs: pairs, Source: source})
	err = operation.NewRunner(cfg.Async).Run(ctx, op)
*/
package operation
