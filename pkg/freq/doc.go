/*
Package freq tabulates symbol frequency statistics over a cleaned corpus:
single characters (case-sensitive and case-folded), character n-grams, and
word n-grams. Tables rank symbols by descending count with lexicographic
tie-breaks, export to CSV with display substitutions for space and newline,
and persist to a SQLite stats database for later sampling.
*/
package freq
