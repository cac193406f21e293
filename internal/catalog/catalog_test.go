package catalog

import (
	"errors"
	"testing"
)

func TestNewFiltersEligibility(t *testing.T) {
	performers := []Performer{
		{Name: "Juan D'Arienzo", Active: true, Level: 1},
		{Name: "Carlos Di Sarli", Active: true, Level: 3},
		{Name: "Orquesta X", Active: false, Level: 1},
	}
	tracks := []Track{
		{ID: "a", PerformerName: "Juan D'Arienzo"},
		{ID: "b", PerformerName: "Carlos Di Sarli"},
		{ID: "c", PerformerName: "Orquesta X"},
	}

	cat, err := New(tracks, performers, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(cat.Performers) != 1 || cat.Performers[0].Name != "Juan D'Arienzo" {
		t.Fatalf("eligible performers = %v", cat.Performers)
	}
	if len(cat.Tracks) != 1 || cat.Tracks[0].ID != "a" {
		t.Fatalf("playable tracks = %v", cat.Tracks)
	}
}

func TestNewNoLevelCeiling(t *testing.T) {
	performers := []Performer{{Name: "Carlos Di Sarli", Active: true, Level: 9}}
	tracks := []Track{{ID: "b", PerformerName: "Carlos Di Sarli"}}

	cat, err := New(tracks, performers, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(cat.Performers) != 1 {
		t.Fatalf("level ceiling applied when disabled: %v", cat.Performers)
	}
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(nil, nil, 0); !errors.Is(err, ErrEmpty) {
		t.Fatalf("got %v, want ErrEmpty", err)
	}

	// Performers exist but no track survives.
	performers := []Performer{{Name: "Juan D'Arienzo", Active: true}}
	tracks := []Track{{ID: "a", PerformerName: "Somebody Else"}}
	if _, err := New(tracks, performers, 0); !errors.Is(err, ErrEmpty) {
		t.Fatalf("got %v, want ErrEmpty", err)
	}
}

func TestSharesTag(t *testing.T) {
	a := Performer{Name: "A", Tags: []string{"tango", "vals"}}
	b := Performer{Name: "B", Tags: []string{"vals"}}
	c := Performer{Name: "C", Tags: []string{"milonga"}}

	if !SharesTag(a, b) {
		t.Error("a and b share vals")
	}
	if SharesTag(a, c) {
		t.Error("a and c share nothing")
	}
}
