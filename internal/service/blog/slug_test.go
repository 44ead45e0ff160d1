package blog

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces\tand\ttabs", "multiple-spaces-and-tabs"},
		{"already-a--slug", "already-a-slug"},
		{"- dashes - everywhere -", "dashes-everywhere"},
		{"Season 2: Episode 10", "season-2-episode-10"},
		{"Café Crème", "caf-crme"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestContentAnalyzer(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{450, 3},
	}
	for _, tt := range tests {
		if got := analyzer.ReadingTime(tt.words); got != tt.want {
			t.Errorf("ReadingTime(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
