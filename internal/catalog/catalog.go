// Package catalog defines the immutable song and performer inputs the game
// engine draws from, plus the import pipeline that produces them from a raw
// DJ library export.
package catalog

import "errors"

// ErrEmpty is returned when filtering leaves no playable tracks or performers.
var ErrEmpty = errors.New("catalog is empty")

// Track is one playable song snippet.
type Track struct {
	ID            string
	Title         string
	PerformerName string
	AudioRef      string
	Tags          []string
}

// Performer is an orchestra or artist that can appear as an answer option.
type Performer struct {
	Name   string
	Tags   []string
	Active bool
	Level  int
}

// Catalog is a read-only snapshot of tracks and performers, already filtered
// for eligibility. Built once per play session.
type Catalog struct {
	Tracks     []Track
	Performers []Performer
}

// New filters raw catalog data down to what the engine may use: performers
// that are active and at or below maxLevel, and tracks whose performer
// survived the filter. maxLevel <= 0 disables the level ceiling.
func New(tracks []Track, performers []Performer, maxLevel int) (*Catalog, error) {
	eligible := make([]Performer, 0, len(performers))
	byName := make(map[string]bool, len(performers))
	for _, p := range performers {
		if !p.Active {
			continue
		}
		if maxLevel > 0 && p.Level > maxLevel {
			continue
		}
		eligible = append(eligible, p)
		byName[p.Name] = true
	}

	playable := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if byName[t.PerformerName] {
			playable = append(playable, t)
		}
	}

	if len(playable) == 0 || len(eligible) == 0 {
		return nil, ErrEmpty
	}
	return &Catalog{Tracks: playable, Performers: eligible}, nil
}

// PerformerByName returns the eligible performer with the given name.
func (c *Catalog) PerformerByName(name string) (Performer, bool) {
	for _, p := range c.Performers {
		if p.Name == name {
			return p, true
		}
	}
	return Performer{}, false
}

// SharesTag reports whether two performers have at least one tag in common.
func SharesTag(a, b Performer) bool {
	for _, ta := range a.Tags {
		for _, tb := range b.Tags {
			if ta == tb {
				return true
			}
		}
	}
	return false
}
