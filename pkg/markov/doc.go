/*
Package markov builds Markov chain models over a flat text corpus and
performs random walks over them to synthesize new text.

Three generation strategies are provided. CharModel pre-indexes every
(n-1)-character context into a follower map and samples uniformly among the
recorded successors. ScanGenerate skips the index and re-searches the raw
corpus for the current context on every step, which is O(corpus) per symbol
and biased toward whichever match the scan finds first; the two are kept as
distinct, selectable strategies because their statistical and performance
characteristics differ. WordModel applies the indexed walk to word tokens
and biases both the start context and each transition toward a preferred
vocabulary list.

All walks take an explicit rand source; a fixed seed reproduces output
byte for byte. A corpus too short to form a single context fails fast with
ErrEmptyCorpus rather than retrying.
*/
package markov
