package handlers

import (
	"regexp"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func mapBackedTaken(existing ...string) func(string) (bool, error) {
	set := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		set[s] = struct{}{}
	}
	return func(candidate string) (bool, error) {
		_, ok := set[candidate]
		return ok, nil
	}
}

func TestNextAvailableSlugReturnsBaseWhenFree(t *testing.T) {
	got, err := nextAvailableSlug("gaming-mouse", mapBackedTaken())
	if err != nil {
		t.Fatalf("nextAvailableSlug returned error: %v", err)
	}
	if got != "gaming-mouse" {
		t.Fatalf("expected base slug, got %q", got)
	}
}

func TestNextAvailableSlugAppendsCounterOnCollision(t *testing.T) {
	got, err := nextAvailableSlug("gaming-mouse", mapBackedTaken("gaming-mouse"))
	if err != nil {
		t.Fatalf("nextAvailableSlug returned error: %v", err)
	}
	if got != "gaming-mouse-1" {
		t.Fatalf("expected gaming-mouse-1, got %q", got)
	}
}

func TestNextAvailableSlugProbesSequentially(t *testing.T) {
	got, err := nextAvailableSlug("gaming-mouse",
		mapBackedTaken("gaming-mouse", "gaming-mouse-1", "gaming-mouse-2"))
	if err != nil {
		t.Fatalf("nextAvailableSlug returned error: %v", err)
	}
	if got != "gaming-mouse-3" {
		t.Fatalf("expected gaming-mouse-3, got %q", got)
	}
}

func TestSlugBaseIsURLSafe(t *testing.T) {
	names := []string{
		"Gaming Mouse XL",
		"Áo Thun Nam",
		"Café au Lait (250g)",
		"100% Cotton T-Shirt!",
	}
	for _, name := range names {
		got, err := nextAvailableSlug(makeBaseSlug(name), mapBackedTaken())
		if err != nil {
			t.Fatalf("nextAvailableSlug(%q) returned error: %v", name, err)
		}
		if !slugPattern.MatchString(got) {
			t.Fatalf("slug %q for name %q is not URL-safe", got, name)
		}
	}
}

func TestSlugBaseStripsAccents(t *testing.T) {
	if got := makeBaseSlug("Áo Thun Nam"); got != "ao-thun-nam" {
		t.Fatalf("expected ao-thun-nam, got %q", got)
	}
}
