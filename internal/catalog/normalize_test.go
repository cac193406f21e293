package catalog

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Aníbal Troilo", "Anibal Troilo"},
		{"Edgardo Donato", "Edgardo Donato"},
		{"  .Quejas de Bandoneón ", "Quejas de Bandoneon"},
		{"Osvalo Pugliese", "Osvaldo Pugliese"},
		{"Miguel Caló", "Miguel Calo"},
	}
	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"03 La Cumparsita", "La Cumparsita"},
		{"12  El Choclo", "El Choclo"},
		{"Poema", "Poema"},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanAlbum(t *testing.T) {
	if got := CleanAlbum("Instrumental [Remastered 2004]"); got != "Instrumental" {
		t.Errorf("CleanAlbum = %q, want Instrumental", got)
	}
}

func TestCleanPerformer(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Di Sarli, Carlos", "Carlos Di Sarli"},
		{"De Angelis, Alfredo", "Alfredo De Angelis"},
		{"Tanturi, Ricardo", "Ricardo Tanturi"},
		{"Juan D'Arienzo", "Juan D'Arienzo"},
		{"D'Agostino, Ángel", "Angel D'Agostino"},
	}
	for _, tt := range tests {
		if got := CleanPerformer(tt.in); got != tt.want {
			t.Errorf("CleanPerformer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
