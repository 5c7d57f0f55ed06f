package report

import "testing"

func TestIsNumericLike(t *testing.T) {
	cases := map[string]bool{
		"01-07-1446":    true,
		"1098765432":    true,
		"2025/01/03":    true,
		"هـ 01-07-1446": true,
		"محمد":          false,
		"":              false,
		"   ":           false,
		"King Fahad":    false,
	}
	for in, want := range cases {
		if got := IsNumericLike(in); got != want {
			t.Errorf("IsNumericLike(%q) = %v, want %v", in, got, want)
		}
	}
	if got := NumericPart("هـ 01-07-1446"); got != "01-07-1446" {
		t.Errorf("NumericPart = %q", got)
	}
}

func TestCleanArabic(t *testing.T) {
	if got := CleanArabic("رقم الهوية / الإقامة"); got != "رقم الهوية  -  الإقامة" {
		t.Errorf("CleanArabic = %q", got)
	}
}

func TestReorder(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"latin untouched", "Sick Leave 2025", "Sick Leave 2025"},
		{"arabic reversed", "بت", "تب"},
		{"number keeps order", "رقم 123", "123 مقر"},
		{"date stays together", "في 01-07-1446", "01-07-1446 يف"},
		{"brackets mirrored", "(بت)", "(تب)"},
		{"embedded latin", "مستشفى ABC", "ABC ىفشتسم"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Reorder(tc.in); got != tc.want {
				t.Errorf("Reorder(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestShape(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"isolated", "\u0628", "\uFE8F"},
		{"initial and final", "\u0628\u0628", "\uFE91\uFE90"},
		{"medial", "\u0628\u0628\u0628", "\uFE91\uFE92\uFE90"},
		{"right joining breaks", "\u0627\u0628", "\u0627\uFE8F"},
		{"space breaks", "\u0628 \u0628", "\uFE8F \uFE8F"},
		{"lam alef", "\u0644\u0627", "\uFEFB"},
		{"lam alef final", "\u0628\u0644\u0627", "\uFE91\uFEFC"},
		{"lam alef hamza below", "\u0628\u0644\u0625", "\uFE91\uFEFA"},
		{"lam alef madda", "\u0644\u0622", "\uFEF5"},
		{"lam alef does not join next", "\u0644\u0627\u0628", "\uFEFB\uFE8F"},
		{"mark inside lam alef", "\u0644\u064E\u0627", "\uFEFB\u064E"},
		{"harakat are transparent", "\u0628\u064E\u0628", "\uFE91\u064E\uFE90"},
		{"latin passes", "abc", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Shape(tc.in); got != tc.want {
				t.Errorf("Shape(%q) = %U, want %U", tc.in, []rune(got), []rune(tc.want))
			}
		})
	}
}

func TestLayoutFragmentsCentered(t *testing.T) {
	c := &fakeCanvas{}
	frags := []Fragment{{Text: "ab", Face: LatinRegular}, {Text: "cd", Face: LatinRegular}}
	placed := LayoutFragments(c, frags, 10, 100, 100, true)
	if placed[0].X != 140 || placed[1].X != 150 {
		t.Errorf("placed at %v and %v, want 140 and 150", placed[0].X, placed[1].X)
	}
}
