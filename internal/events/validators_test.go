package events

import "testing"

func TestTimeWindowPattern(t *testing.T) {
	t.Parallel()

	valid := []string{
		"09:00 AM - 06:00 PM",
		"9:00 AM - 11:30 PM",
		"12:00 PM - 12:59 PM",
	}
	for _, s := range valid {
		if !timeWindowRegex.MatchString(s) {
			t.Errorf("timeWindowRegex rejected %q", s)
		}
	}

	invalid := []string{
		"",
		"9 AM - 6 PM",
		"09:00 - 18:00",
		"09:00 AM-06:00 PM",
		"25:00 AM - 06:00 PM",
		"09:60 AM - 06:00 PM",
	}
	for _, s := range invalid {
		if timeWindowRegex.MatchString(s) {
			t.Errorf("timeWindowRegex accepted %q", s)
		}
	}
}

func TestTagListPattern(t *testing.T) {
	t.Parallel()

	valid := []string{"music", "music,arts", "Technology,Business,Food"}
	for _, s := range valid {
		if !tagListRegex.MatchString(s) {
			t.Errorf("tagListRegex rejected %q", s)
		}
	}

	invalid := []string{"", "music, arts", "music,,arts", "rock-n-roll", "web3", "music,"}
	for _, s := range invalid {
		if tagListRegex.MatchString(s) {
			t.Errorf("tagListRegex accepted %q", s)
		}
	}
}

func TestSplitTags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"music", 1},
		{"music,arts,food", 3},
		{"music, arts", 2},
	}
	for _, tc := range cases {
		if got := splitTags(tc.in); len(got) != tc.want {
			t.Errorf("splitTags(%q) = %v, want %d entries", tc.in, got, tc.want)
		}
	}
}
