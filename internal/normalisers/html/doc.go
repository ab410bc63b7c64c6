// Package html normalises HTML documents. The markup is kept as the
// searchable content; the <title> supplies the document title and the
// derived download filename.
package html
