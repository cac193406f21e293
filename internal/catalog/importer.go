package catalog

import (
	"strings"

	"github.com/google/uuid"
)

// RawSong is one record from a DJ library export (iTunes-style JSON).
type RawSong struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Album  string `json:"album"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
	Path   string `json:"path"`
}

// MasterPerformer is one entry of the curated performer master list that raw
// artist credits are matched against.
type MasterPerformer struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Level  int    `json:"level"`
}

// ImportResult is the outcome of an Import run.
type ImportResult struct {
	Tracks     []Track
	Performers []Performer
	Unmatched  []string // raw artist credits with no master match
	Skipped    int      // records whose genre is not a tango style
}

var styleGenres = []string{"tango", "vals", "waltz", "milonga", "marcha"}

// Import converts a raw library export into catalog tracks and performers.
// Records whose genre is not a recognized tango style are skipped. Artist
// credits are normalized and matched against the master list, first exactly,
// then by substring; unmatched credits are reported, not imported.
func Import(songs []RawSong, master []MasterPerformer) ImportResult {
	byLower := make(map[string]MasterPerformer, len(master))
	for _, m := range master {
		byLower[strings.ToLower(CleanPerformer(m.Name))] = m
	}

	var res ImportResult
	seenPerformer := make(map[string]bool)
	seenUnmatched := make(map[string]bool)

	for _, s := range songs {
		style := styleOf(s.Genre)
		if style == "" {
			res.Skipped++
			continue
		}

		credit := CleanPerformer(s.Artist)
		m, ok := matchMaster(credit, byLower)
		if !ok {
			if s.Artist != "" && !seenUnmatched[s.Artist] {
				seenUnmatched[s.Artist] = true
				res.Unmatched = append(res.Unmatched, s.Artist)
			}
			continue
		}

		name := CleanPerformer(m.Name)
		tags := trackTags(s.Genre, style)

		res.Tracks = append(res.Tracks, Track{
			ID:            uuid.NewString(),
			Title:         CleanTitle(s.Title),
			PerformerName: name,
			AudioRef:      s.Path,
			Tags:          tags,
		})

		if !seenPerformer[name] {
			seenPerformer[name] = true
			res.Performers = append(res.Performers, Performer{
				Name:   name,
				Tags:   tags,
				Active: m.Active,
				Level:  m.Level,
			})
		} else {
			mergeTags(res.Performers, name, tags)
		}
	}
	return res
}

// styleOf maps a free-form genre string to its tango style tag, or "" when
// the genre is out of scope.
func styleOf(genre string) string {
	g := strings.ToLower(genre)
	switch {
	case strings.Contains(g, "tango"):
		return "tango"
	case strings.Contains(g, "vals"), strings.Contains(g, "waltz"):
		return "vals"
	case strings.Contains(g, "milonga"):
		return "milonga"
	case strings.Contains(g, "marcha"):
		return "marcha"
	default:
		return ""
	}
}

func trackTags(genre, style string) []string {
	tags := []string{style}
	g := strings.ToLower(genre)
	if strings.Contains(g, "alt") {
		tags = append(tags, "alternative")
	}
	if strings.Contains(g, "candombe") {
		tags = append(tags, "candombe")
	}
	if strings.Contains(g, "cancion") {
		tags = append(tags, "cancion")
	}
	return tags
}

func matchMaster(credit string, byLower map[string]MasterPerformer) (MasterPerformer, bool) {
	lowered := strings.ToLower(credit)
	if m, ok := byLower[lowered]; ok {
		return m, true
	}
	// Compound credits like "Juan D'Arienzo y su Orquesta Tipica" still
	// contain the master name.
	for key, m := range byLower {
		if key != "" && strings.Contains(lowered, key) {
			return m, true
		}
	}
	return MasterPerformer{}, false
}

func mergeTags(performers []Performer, name string, tags []string) {
	for i := range performers {
		if performers[i].Name != name {
			continue
		}
		for _, t := range tags {
			found := false
			for _, have := range performers[i].Tags {
				if have == t {
					found = true
					break
				}
			}
			if !found {
				performers[i].Tags = append(performers[i].Tags, t)
			}
		}
		return
	}
}
