package quiz

import "testing"

func TestBasePoints(t *testing.T) {
	tests := []struct {
		limit int
		want  float64
	}{
		{10, 100},
		{9, 120},
		{5, 200},
		{1, 280},
		{11, 90},
		{15, 50},
		{19, 10},
		{20, 10},  // clamped
		{30, 10},  // would be -100 unclamped
		{120, 10}, // clamped
	}
	for _, tt := range tests {
		if got := BasePoints(tt.limit); got != tt.want {
			t.Errorf("BasePoints(%d) = %v, want %v", tt.limit, got, tt.want)
		}
	}
}

func TestPenalty(t *testing.T) {
	if got := penalty(PenaltyPercentOfBase, 100); got != 5 {
		t.Errorf("percent penalty on 100 base = %v, want 5", got)
	}
	if got := penalty(PenaltyPercentOfBase, 200); got != 10 {
		t.Errorf("percent penalty on 200 base = %v, want 10", got)
	}
	if got := penalty(PenaltyFlat, 200); got != 10 {
		t.Errorf("flat penalty = %v, want 10", got)
	}
}

func TestResultMessage(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "Excellent"},
		{81, "Excellent"},
		{80, "Great"},
		{51, "Great"},
		{50, "Not bad"},
		{21, "Not bad"},
		{20, "Better luck next time."},
		{0, "Better luck next time."},
	}
	for _, tt := range tests {
		if got := resultMessage(tt.score, 100); got != tt.want {
			t.Errorf("resultMessage(%v, 100) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestDisplayScore(t *testing.T) {
	if got := displayScore(69.5); got != 70 {
		t.Errorf("displayScore(69.5) = %d, want 70", got)
	}
	if got := displayScore(69.4); got != 69 {
		t.Errorf("displayScore(69.4) = %d, want 69", got)
	}
}
