// internal/morse/translate.go
package morse

import "strings"

// Translate converts an accumulated symbol stream into text: words split
// at word gaps, letters split at symbol gaps, each letter code mapped
// through the table. Codes missing from the table contribute nothing:
// decoding noise degrades the message, it never aborts translation.
//
// Pure and total: no state, no failure mode. Translating the same stream
// twice yields identical output.
func Translate(symbols SymbolStream, table Table) string {
	var out strings.Builder

	for _, word := range strings.Split(symbols.String(), string(WordGap)) {
		var letters strings.Builder
		for _, code := range strings.Split(word, string(SymbolGap)) {
			if ch, ok := table[code]; ok {
				letters.WriteRune(ch)
			}
		}
		out.WriteString(letters.String())
		out.WriteByte(' ')
	}

	return strings.TrimSpace(out.String())
}
