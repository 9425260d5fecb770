package browsercookie

import (
	"regexp"
	"slices"
	"strings"
)

// Jar is the merged output of a Find call, keyed by cookie name. Inserting
// a name that is already present overwrites the earlier cookie; Find relies
// on that to implement its last-write-wins merge.
type Jar struct {
	cookies map[string]Cookie
}

func newJar() *Jar {
	return &Jar{cookies: make(map[string]Cookie)}
}

func (j *Jar) set(c Cookie) {
	j.cookies[c.Name] = c
}

// Get returns the cookie with the given name, or ErrNoMatch.
func (j *Jar) Get(name string) (Cookie, error) {
	c, ok := j.cookies[name]
	if !ok {
		return Cookie{}, ErrNoMatch
	}
	return c, nil
}

// Len reports how many cookies the jar holds.
func (j *Jar) Len() int { return len(j.cookies) }

// Cookies returns the jar's contents sorted by name.
func (j *Jar) Cookies() []Cookie {
	out := make([]Cookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Cookie) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// ToHeader renders the jar as an HTTP Cookie header value, keeping only
// cookies whose domain matches domainRe. A nil pattern keeps everything.
func (j *Jar) ToHeader(domainRe *regexp.Regexp) string {
	var b strings.Builder
	for _, c := range j.Cookies() {
		if domainRe != nil && !domainRe.MatchString(c.Domain) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(c.Name)
		b.WriteByte('=')
		b.WriteString(c.Value)
	}
	return b.String()
}
