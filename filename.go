package pitchdeck

import "strings"

const (
	deckFileSuffix   = "_Pitch_Deck.pdf"
	defaultDeckFile  = "Pitch_Deck.pdf"
	filenameReplacer = "_"
)

// unsafeFilenameChars are replaced so the name is safe as a download
// filename and in a Content-Disposition header.
const unsafeFilenameChars = `/\:*?"<>|` + "\x00"

// DeckFilename derives the export filename from a startup name:
// whitespace runs become "_" and "_Pitch_Deck.pdf" is appended.
// A blank name yields "Pitch_Deck.pdf".
func DeckFilename(startupName string) string {
	words := strings.Fields(startupName)
	if len(words) == 0 {
		return defaultDeckFile
	}
	base := strings.Join(words, filenameReplacer)
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeFilenameChars, r) {
			return '_'
		}
		return r
	}, base)
	return base + deckFileSuffix
}
