package candidatures

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"identified", StatusIdentified, false},
		{"letter_generated", StatusLetterGenerated, false},
		{"applied", StatusApplied, false},
		{"response_received", StatusResponseReceived, false},
		{"interview", StatusInterview, false},
		{"refused", StatusRefused, false},
		{"accepted", StatusAccepted, false},
		{"", StatusIdentified, true},
		{"bogus", StatusIdentified, true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsCanonicalTransition(t *testing.T) {
	canonical := []struct{ from, to Status }{
		{StatusIdentified, StatusLetterGenerated},
		{StatusLetterGenerated, StatusApplied},
		{StatusApplied, StatusResponseReceived},
		{StatusResponseReceived, StatusInterview},
		{StatusInterview, StatusRefused},
		{StatusInterview, StatusAccepted},
	}
	for _, tc := range canonical {
		if !IsCanonicalTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be canonical", tc.from, tc.to)
		}
	}

	jumps := []struct{ from, to Status }{
		{StatusIdentified, StatusApplied},
		{StatusApplied, StatusIdentified},
		{StatusRefused, StatusInterview},
		{StatusIdentified, StatusAccepted},
	}
	for _, tc := range jumps {
		if IsCanonicalTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be a jump", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusRefused) || !IsTerminal(StatusAccepted) {
		t.Fatal("refused and accepted are terminal")
	}
	if IsTerminal(StatusInterview) || IsTerminal(StatusIdentified) {
		t.Fatal("interview and identified are not terminal")
	}
}
