package orders

import "testing"

func TestFormatPhoneNumber_TenDigits(t *testing.T) {
	t.Parallel()

	if got := FormatPhoneNumber("4251234567"); got != "(425) 123-4567" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatPhoneNumber_Hyphenated(t *testing.T) {
	t.Parallel()

	if got := FormatPhoneNumber("425-123-4567"); got != "(425) 123-4567" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatPhoneNumber_CountryPrefix(t *testing.T) {
	t.Parallel()

	// 前缀剥掉后是带连字符的号码，正常格式化
	if got := FormatPhoneNumber("'+1 425-123-4567"); got != "(425) 123-4567" {
		t.Fatalf("unexpected format: %s", got)
	}
	// 前缀剥掉后是纯 10 位数字，保持剥掉前缀后的原样
	if got := FormatPhoneNumber("'+1 4251234567"); got != "4251234567" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatPhoneNumber_Unrecognized(t *testing.T) {
	t.Parallel()

	for _, number := range []string{"abc", "", "425 123 4567", "42512345678"} {
		if got := FormatPhoneNumber(number); got != number {
			t.Fatalf("%q should pass through unchanged, got %q", number, got)
		}
	}
}
