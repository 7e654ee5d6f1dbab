package tenant

import "testing"

func TestResolverSlug(t *testing.T) {
	r := NewResolver("chavez")

	cases := []struct {
		host string
		want string
	}{
		{"sanmarcos.localhost:5173", "sanmarcos"},
		{"sanmarcos.localhost", "sanmarcos"},
		{"sanmarcos.127.0.0.1:4000", "sanmarcos"},
		{"localhost:5173", "chavez"},
		{"localhost", "chavez"},
		{"127.0.0.1:4000", "chavez"},
		{"127.0.0.1", "chavez"},
		{"192.168.1.50:5173", "chavez"},
		{"[::1]:4000", "chavez"},
		{"sanmarcos.vetlink.pe", "sanmarcos"},
		{"sanmarcos.vetlink.pe:443", "sanmarcos"},
		{"vetlink.pe", "chavez"},
	}

	for _, tc := range cases {
		if got := r.Slug(tc.host); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}

func TestResolverBaseURL(t *testing.T) {
	r := NewResolver("chavez")

	if got := r.BaseURL("localhost:5173"); got != "http://chavez.localhost:4000/api" {
		t.Errorf("BaseURL(localhost:5173) = %q", got)
	}
	if got := r.BaseURL("sanmarcos.vetlink.pe"); got != "http://sanmarcos.vetlink.pe:4000/api" {
		t.Errorf("BaseURL(sanmarcos.vetlink.pe) = %q", got)
	}
}
