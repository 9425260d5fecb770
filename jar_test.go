package browsercookie

import (
	"errors"
	"regexp"
	"testing"
)

func TestJarGet(t *testing.T) {
	jar := newJar()
	jar.set(Cookie{Name: "sid", Value: "one"})

	c, err := jar.Get("sid")
	if err != nil {
		t.Fatal(err)
	}
	if c.Value != "one" {
		t.Fatalf("value = %q", c.Value)
	}

	if _, err := jar.Get("missing"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("want ErrNoMatch, got %v", err)
	}
}

func TestJarSet_LastWriteWinsByName(t *testing.T) {
	jar := newJar()
	jar.set(Cookie{Name: "sid", Value: "one", Domain: "a.example"})
	jar.set(Cookie{Name: "sid", Value: "two", Domain: "b.example"})

	if jar.Len() != 1 {
		t.Fatalf("want 1 cookie, got %d", jar.Len())
	}
	c, err := jar.Get("sid")
	if err != nil {
		t.Fatal(err)
	}
	if c.Value != "two" || c.Domain != "b.example" {
		t.Fatalf("want the later insertion, got %+v", c)
	}
}

func TestJarCookies_SortedByName(t *testing.T) {
	jar := newJar()
	jar.set(Cookie{Name: "zeta"})
	jar.set(Cookie{Name: "alpha"})
	jar.set(Cookie{Name: "mid"})

	got := jar.Cookies()
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("cookies[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestJarToHeader(t *testing.T) {
	jar := newJar()
	jar.set(Cookie{Name: "sid", Value: "abc", Domain: "httpbin.org"})
	jar.set(Cookie{Name: "theme", Value: "dark", Domain: "other.example"})
	jar.set(Cookie{Name: "csrf", Value: "xyz", Domain: "api.httpbin.org"})

	got := jar.ToHeader(regexp.MustCompile(`httpbin\.org`))
	if got != "csrf=xyz; sid=abc" {
		t.Fatalf("header = %q", got)
	}

	if got := jar.ToHeader(nil); got != "csrf=xyz; sid=abc; theme=dark" {
		t.Fatalf("unfiltered header = %q", got)
	}

	if got := newJar().ToHeader(nil); got != "" {
		t.Fatalf("empty jar header = %q", got)
	}
}
