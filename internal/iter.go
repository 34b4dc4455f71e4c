package internal

import (
	"iter"
)

// IterSeq2Concat chains keyed sequences, stopping as soon as the consumer does.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, val := range seq {
				if !yield(key, val) {
					return
				}
			}
		}
	}
}

// Lines yields each line of text with its 1-based line number. Carriage
// returns preceding a newline are dropped; a final newline does not start a
// new line.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lineno := 0
		for len(text) > 0 {
			lineno++
			line := text
			rest := ""
			for n := range len(text) {
				if text[n] == '\n' {
					line = text[:n]
					rest = text[n+1:]
					break
				}
			}
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			if !yield(lineno, line) {
				return
			}
			text = rest
		}
	}
}
