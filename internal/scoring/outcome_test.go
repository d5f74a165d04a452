package scoring

import "testing"

func TestOutcomeTotals(t *testing.T) {
	tests := []struct {
		o      BallOutcome
		label  string
		legal  bool
		team   int
		batter int
		wicket bool
	}{
		{Run{Runs: 4}, "4", true, 4, 4, false},
		{Run{Runs: 0}, "0", true, 0, 0, false},
		{Wide{Runs: 2}, "WD+2", false, 3, 0, false},
		{Wide{Runs: 0, Wicket: true}, "WD+0", false, 1, 0, true},
		{NoBall{Runs: 1}, "NB+1", false, 2, 0, false},
		{Bye{Runs: 3}, "B3", true, 3, 0, false},
		{LegBye{Runs: 1}, "LB1", true, 1, 0, false},
		{Wicket{}, "W", true, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := tt.o.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.o.IsLegal(); got != tt.legal {
				t.Errorf("IsLegal() = %v, want %v", got, tt.legal)
			}
			if got := tt.o.TeamRuns(); got != tt.team {
				t.Errorf("TeamRuns() = %d, want %d", got, tt.team)
			}
			if got := tt.o.BatterRuns(); got != tt.batter {
				t.Errorf("BatterRuns() = %d, want %d", got, tt.batter)
			}
			if got := tt.o.IsWicket(); got != tt.wicket {
				t.Errorf("IsWicket() = %v, want %v", got, tt.wicket)
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label string
		want  BallOutcome
	}{
		{"6", Run{Runs: 6}},
		{"0", Run{Runs: 0}},
		{"WD+4", Wide{Runs: 4}},
		{"NB+0", NoBall{Runs: 0}},
		{"B2", Bye{Runs: 2}},
		{"LB4", LegBye{Runs: 4}},
		{"W", Wicket{}},
	}
	for _, tt := range tests {
		got, err := ParseLabel(tt.label)
		if err != nil {
			t.Errorf("ParseLabel(%q): %v", tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLabel(%q) = %#v, want %#v", tt.label, got, tt.want)
		}
	}
}

func TestParseLabelRejects(t *testing.T) {
	for _, label := range []string{"", "5", "7", "WD+5", "B5", "LB-1", "X", "NB+"} {
		if _, err := ParseLabel(label); err == nil {
			t.Errorf("ParseLabel(%q) accepted", label)
		}
	}
}
