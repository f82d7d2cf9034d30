package main

import "strings"

// SearchBooks returns the position of the first book having one field equal
// to query, ignoring case. Partial values do not match: "orwell" finds a book
// by "Orwell" but "orw" finds nothing.
func SearchBooks(books []Book, query string) (int, bool) {
	q := strings.ToLower(query)
	for i, book := range books {
		for _, v := range book.Fields() {
			if strings.ToLower(v) == q {
				return i, true
			}
		}
	}
	return -1, false
}
