package normalize

import "testing"

func TestDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "ascii text is unchanged",
			input: "coffee 5 dollars, lunch 15",
			want:  "coffee 5 dollars, lunch 15",
		},
		{
			name:  "arabic-indic digits",
			input: "قهوة ٥ دولار",
			want:  "قهوة 5 دولار",
		},
		{
			name:  "eastern arabic-indic digits",
			input: "ناهار ۱۵۰ تومان",
			want:  "ناهار 150 تومان",
		},
		{
			name:  "mixed scripts in one token",
			input: "٢5۷",
			want:  "257",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "no digits at all",
			input: "coffee and lunch",
			want:  "coffee and lunch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Digits(tt.input); got != tt.want {
				t.Errorf("Digits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDigitsIdentityOnASCII(t *testing.T) {
	inputs := []string{"0123456789", "spent 20 on gas", "a1b2c3", "  42  "}
	for _, in := range inputs {
		if got := Digits(in); got != in {
			t.Errorf("Digits(%q) = %q, want identity", in, got)
		}
	}
}
