// Package table reconstructs the tree of a crawl log into a rectangular
// table.
//
// Each row of the table is one discovered URL. Column 0 holds the origin,
// column n holds URLs found at tier n, and filler cells occupy every
// position that has no value. Rows found from a page are placed directly
// below the row that mentions that page, so the row order is a pre-order
// walk of the crawl tree:
//
//	http://a.com ,NA
//	NA           ,http://a.com/x
//	NA           ,http://a.com/y
//
// Construction happens in three stages. Builder walks the classified lines
// and inserts rows, using Resolve to find where a tier's rows belong and how
// many filler cells precede them. Pad then widens every row to the longest
// one. The result is handed to a writer in the report package.
package table
