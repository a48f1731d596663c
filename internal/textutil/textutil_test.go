package textutil

import "testing"

func TestHumanSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1 << 30, "1.0 GB"},
		{1 << 40, "1.0 TB"},
		{-1, "unknown"},
		{-500, "unknown"},
	}
	for _, c := range cases {
		if got := HumanSize(c.in); got != c.want {
			t.Fatalf("HumanSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
