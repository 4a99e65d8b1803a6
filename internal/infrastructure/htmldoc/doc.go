// Package htmldoc adapts raw product page HTML to the detection engine.
//
// Pages are decoded to UTF-8 (chardet guess plus x/net/html/charset), parsed
// once with x/net/html and queried through goquery for CSS selectors and
// htmlquery for XPath. Text is NFKC-normalized so non-breaking spaces and
// full-width digits reach the engine as plain ASCII.
package htmldoc
