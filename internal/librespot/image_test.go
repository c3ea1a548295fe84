package librespot

import "testing"

func TestNormalizeImageURL(t *testing.T) {
	const hexID = "ab67616d0000b273deadbeefdeadbeefdeadbeef"
	const cdn = "https://i.scdn.co/image/" + hexID

	tests := []struct {
		name string
		raw  string
		base string
		want string
	}{
		{
			name: "empty",
			raw:  "",
			base: "http://localhost:3678",
			want: "",
		},
		{
			name: "relative path joins base",
			raw:  "/cover/abc.jpg",
			base: "http://localhost:3678",
			want: "http://localhost:3678/cover/abc.jpg",
		},
		{
			name: "relative path with trailing slash base",
			raw:  "/cover/abc.jpg",
			base: "http://localhost:3678/",
			want: "http://localhost:3678/cover/abc.jpg",
		},
		{
			name: "u.scdn.co rewritten to cdn",
			raw:  "https://u.scdn.co/images/pl/default/" + hexID,
			base: "",
			want: cdn,
		},
		{
			name: "u.scdn.co uppercase hex lowered",
			raw:  "https://u.scdn.co/images/pl/default/AB67616D0000B273DEADBEEFDEADBEEFDEADBEEF",
			base: "",
			want: cdn,
		},
		{
			name: "spotify image uri",
			raw:  "spotify:image:" + hexID,
			base: "",
			want: cdn,
		},
		{
			name: "bare hex id",
			raw:  hexID,
			base: "",
			want: cdn,
		},
		{
			name: "absolute url passes through",
			raw:  "https://i.scdn.co/image/" + hexID,
			base: "http://localhost:3678",
			want: cdn,
		},
		{
			name: "short hex passes through",
			raw:  "deadbeef",
			base: "",
			want: "deadbeef",
		},
		{
			name: "non-hex forty chars passes through",
			raw:  "zz67616d0000b273deadbeefdeadbeefdeadbeef",
			base: "",
			want: "zz67616d0000b273deadbeefdeadbeefdeadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeImageURL(tt.raw, tt.base); got != tt.want {
				t.Errorf("NormalizeImageURL(%q, %q) = %q, want %q", tt.raw, tt.base, got, tt.want)
			}
		})
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"spotify:track:4uLU6hMCjMI75M1A2tKUQC", "4uLU6hMCjMI75M1A2tKUQC"},
		{"spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
		{"noColonHere", "noColonHere"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractID(tt.uri); got != tt.want {
			t.Errorf("ExtractID(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
