package conversation

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"local zero prefix", "0712345678", "254712345678", true},
		{"local zero one prefix", "0112345678", "254112345678", true},
		{"country code", "254712345678", "254712345678", true},
		{"plus country code", "+254712345678", "254712345678", true},
		{"bare nine digits", "712345678", "254712345678", true},
		{"spaces and dashes", "0712 345-678", "254712345678", true},
		{"embedded in sentence", "my number is 0712345678 thanks", "254712345678", true},
		{"too short", "071234567", "", false},
		{"too long", "07123456789", "", false},
		{"landline prefix", "0202345678", "", false},
		{"wrong country code", "255712345678", "", false},
		{"no digits", "call me", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePhone(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("NormalizePhone(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	once, ok := NormalizePhone("0712345678")
	if !ok {
		t.Fatal("first normalization failed")
	}
	twice, ok := NormalizePhone(once)
	if !ok || twice != once {
		t.Fatalf("re-normalizing %q gave %q, %v", once, twice, ok)
	}
}
