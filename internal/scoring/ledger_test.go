package scoring

import "testing"

func TestRecordBallCountsLegalBallsOnly(t *testing.T) {
	l := Ledger{CurrentOver: []string{}}

	seq := []struct {
		label string
		legal bool
	}{
		{"1", true},
		{"WD+0", false},
		{"2", true},
		{"NB+1", false},
		{"0", true},
		{"4", true},
		{"B1", true},
	}
	for _, b := range seq {
		var done bool
		l, done = l.RecordBall(b.label, b.legal)
		if done {
			t.Fatalf("over completed early at %q", b.label)
		}
		if l.LegalBallsInOver < 0 || l.LegalBallsInOver > BallsPerOver-1 {
			t.Fatalf("counter out of range: %d", l.LegalBallsInOver)
		}
	}
	if l.LegalBallsInOver != 5 {
		t.Fatalf("legal balls = %d, want 5", l.LegalBallsInOver)
	}
	if len(l.CurrentOver) != len(seq) {
		t.Fatalf("current over = %v, want %d entries", l.CurrentOver, len(seq))
	}

	l, done := l.RecordBall("6", true)
	if !done {
		t.Fatal("sixth legal ball did not complete the over")
	}
	if l.LegalBallsInOver != 0 || l.OversCompleted != 1 {
		t.Errorf("after over: balls=%d overs=%d", l.LegalBallsInOver, l.OversCompleted)
	}
	if l.CurrentOver == nil || len(l.CurrentOver) != 0 {
		t.Errorf("current over not cleared: %v", l.CurrentOver)
	}
	if l.Overs() != "1.0" {
		t.Errorf("Overs() = %q", l.Overs())
	}
}

func TestRecordBallDoesNotAlias(t *testing.T) {
	base := Ledger{CurrentOver: make([]string, 1, 8)}
	base.CurrentOver[0] = "1"

	a, _ := base.RecordBall("2", true)
	b, _ := base.RecordBall("4", true)

	if a.CurrentOver[1] != "2" || b.CurrentOver[1] != "4" {
		t.Fatalf("shared backing array: a=%v b=%v", a.CurrentOver, b.CurrentOver)
	}
	if len(base.CurrentOver) != 1 {
		t.Fatalf("input ledger modified: %v", base.CurrentOver)
	}
}

func TestAddWicketCapsAtTen(t *testing.T) {
	var l Ledger
	for i := 0; i < MaxWickets+3; i++ {
		l = l.AddWicket()
	}
	if l.TotalWickets != MaxWickets {
		t.Errorf("wickets = %d, want %d", l.TotalWickets, MaxWickets)
	}
	if !l.AllOut() {
		t.Error("AllOut() = false at ten wickets")
	}
}

func TestLedgerDisplay(t *testing.T) {
	l := Ledger{TotalRuns: 158, TotalWickets: 4, OversCompleted: 17, LegalBallsInOver: 3}
	if got := l.ScoreLine(); got != "158/4" {
		t.Errorf("ScoreLine() = %q", got)
	}
	if got := l.Overs(); got != "17.3" {
		t.Errorf("Overs() = %q", got)
	}
	if got := l.TotalLegalBalls(); got != 105 {
		t.Errorf("TotalLegalBalls() = %d", got)
	}
}
