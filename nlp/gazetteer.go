package nlp

import "strings"

// Gazetteer of recognized place names, lowercased. Multi-word entries come
// first so that "ilocos sur" wins over any of its constituent words appearing
// in a longer entry. Matching requires exact substring containment of the
// full phrase.
var Gazetteer = []string{
	"ilocos norte",
	"ilocos sur",
	"san nicolas",
	"nueva era",
	"laoag",
	"batac",
	"pagudpud",
	"vigan",
	"paoay",
	"burgos",
	"currimao",
	"sarrat",
	"piddig",
	"pasuquin",
	"vintar",
	"solsona",
}

// Locative prepositions that commonly introduce a place name. A gazetteer
// entry preceded by one of these is an unambiguous location mention; a bare
// substring occurrence also counts.
var locativePrepositions = []string{"in", "at", "near", "from", "to", "around"}

// DetectLocation scans the raw text for the first gazetteer entry it
// contains, preferring prepositional mentions ("in pagudpud") over bare
// occurrences. Returns the matched gazetteer form, or "" when no entry is
// present.
func DetectLocation(text string) string {
	lowered := strings.ToLower(foldDiacritics(text))

	for _, place := range Gazetteer {
		for _, prep := range locativePrepositions {
			if strings.Contains(lowered, prep+" "+place) {
				return place
			}
		}
	}

	for _, place := range Gazetteer {
		if strings.Contains(lowered, place) {
			return place
		}
	}

	return ""
}
