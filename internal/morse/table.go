// internal/morse/table.go
package morse

// Table maps a letter code (a sequence of '.' and '-') to its character.
// Lookups for unknown codes must degrade to "no character", never an
// error: a physical track always produces some misreads.
type Table map[string]rune

// StandardTable is the international Morse alphabet for letters and digits.
var StandardTable = Table{
	".-": 'A', "-...": 'B', "-.-.": 'C', "-..": 'D', ".": 'E', "..-.": 'F',
	"--.": 'G', "....": 'H', "..": 'I', ".---": 'J', "-.-": 'K', ".-..": 'L',
	"--": 'M', "-.": 'N', "---": 'O', ".--.": 'P', "--.-": 'Q', ".-.": 'R',
	"...": 'S', "-": 'T', "..-": 'U', "...-": 'V', ".--": 'W', "-..-": 'X',
	"-.--": 'Y', "--..": 'Z', "-----": '0', ".----": '1', "..---": '2',
	"...--": '3', "....-": '4', ".....": '5', "-....": '6', "--...": '7',
	"---..": '8', "----.": '9',
}

// Code returns the letter code for a character, for the encode-side users
// of the table (the sidetone announcer). The second return is false when
// the character has no code.
func (t Table) Code(ch rune) (string, bool) {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	for code, r := range t {
		if r == ch {
			return code, true
		}
	}
	return "", false
}
