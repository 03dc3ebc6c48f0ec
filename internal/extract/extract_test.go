package extract

import (
	"reflect"
	"testing"
)

func TestFromText_bothShapes(t *testing.T) {
	text := `first: http://one.example.io:8080/get.php?username=alice&password=s3cret&type=m3u
second: https://two.example.cc/player_api.php?username=bob&password=pw`
	sets := FromText(text)
	if len(sets) != 2 {
		t.Fatalf("len(sets)=%d, want 2", len(sets))
	}
	if sets[0].Base != "http://one.example.io:8080" {
		t.Errorf("sets[0].Base = %q", sets[0].Base)
	}
	if sets[0].Display != "one.example.io" {
		t.Errorf("sets[0].Display = %q (port should be stripped)", sets[0].Display)
	}
	if sets[0].Username != "alice" || sets[0].Password != "s3cret" {
		t.Errorf("sets[0] creds = %q/%q", sets[0].Username, sets[0].Password)
	}
	// https canonicalised to http
	if sets[1].Base != "http://two.example.cc" {
		t.Errorf("sets[1].Base = %q", sets[1].Base)
	}
}

func TestFromText_dedupeAcrossShapesAndSchemes(t *testing.T) {
	text := `http://srv.top/get.php?username=u&password=p
https://srv.top/get.php?username=u&password=p
http://srv.top/player_api.php?username=u&password=p
http://srv.top/get.php?username=u&password=other`
	sets := FromText(text)
	if len(sets) != 2 {
		t.Fatalf("len(sets)=%d, want 2 (same triple dedupes, new password does not)", len(sets))
	}
	if sets[0].Password != "p" || sets[1].Password != "other" {
		t.Errorf("passwords = %q, %q", sets[0].Password, sets[1].Password)
	}
}

func TestFromText_idempotent(t *testing.T) {
	text := `http://a.io/get.php?username=x&password=y http://b.me/player_api.php?username=w&password=z`
	first := FromText(text)
	second := FromText(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not stable:\n%v\n%v", first, second)
	}
}

func TestFromText_none(t *testing.T) {
	if sets := FromText("no urls in here, just chat"); len(sets) != 0 {
		t.Errorf("expected empty, got %v", sets)
	}
	if sets := FromText("http://host.io/other.php?username=u&password=p"); len(sets) != 0 {
		t.Errorf("unrecognised endpoint should not match, got %v", sets)
	}
}
