package verity_test

import (
	"reflect"
	"testing"

	verity "github.com/verity-go/verity"
)

func TestPath_PointerRendersSegments(t *testing.T) {
	p := verity.Path{}.Field("user").Index(3).Field("name")
	if got := p.Pointer(); got != "/user/3/name" {
		t.Fatalf("expected /user/3/name, got %s", got)
	}
	if got := p.String(); got != "/user/3/name" {
		t.Fatalf("String must match Pointer, got %s", got)
	}
}

func TestPath_PointerRootIsSlash(t *testing.T) {
	if got := verity.Path{}.Pointer(); got != "/" {
		t.Fatalf("expected /, got %s", got)
	}
	var nilPath verity.Path
	if got := nilPath.Pointer(); got != "/" {
		t.Fatalf("expected / for nil path, got %s", got)
	}
}

func TestPath_PointerEscapesSpecialCharacters(t *testing.T) {
	p := verity.Path{}.Field("a/b").Field("m~n")
	if got := p.Pointer(); got != "/a~1b/m~0n" {
		t.Fatalf("expected /a~1b/m~0n, got %s", got)
	}
}

func TestPath_ExtensionsDoNotShareBackingArrays(t *testing.T) {
	base := verity.Path{}.Field("a")
	left := base.Field("b")
	right := base.Field("c")
	if got := left.Pointer(); got != "/a/b" {
		t.Fatalf("left branch corrupted: %s", got)
	}
	if got := right.Pointer(); got != "/a/c" {
		t.Fatalf("right branch corrupted: %s", got)
	}
	if got := base.Pointer(); got != "/a" {
		t.Fatalf("base mutated: %s", got)
	}
}

func TestPath_JoinAppendsAllSegments(t *testing.T) {
	p := verity.Path{}.Field("a")
	q := verity.Path{}.Field("b").Index(0)
	joined := p.Join(q)
	if got := joined.Pointer(); got != "/a/b/0" {
		t.Fatalf("expected /a/b/0, got %s", got)
	}
	if got := p.Join(nil).Pointer(); got != "/a" {
		t.Fatalf("joining an empty path must be a no-op, got %s", got)
	}
}

func TestParsePointer_RoundTrips(t *testing.T) {
	want := verity.Path{}.Field("user").Index(3).Field("name")
	got := verity.ParsePointer("/user/3/name")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parse mismatch\n got: %#v\nwant: %#v", got, want)
	}
	if got.Pointer() != "/user/3/name" {
		t.Fatalf("round trip mismatch: %s", got.Pointer())
	}
}

func TestParsePointer_UnescapesSpecialCharacters(t *testing.T) {
	want := verity.Path{}.Field("a/b").Field("m~n")
	got := verity.ParsePointer("/a~1b/m~0n")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parse mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func TestParsePointer_RootForms(t *testing.T) {
	if got := verity.ParsePointer(""); got != nil {
		t.Fatalf("expected nil path for empty pointer, got %#v", got)
	}
	if got := verity.ParsePointer("/"); got != nil {
		t.Fatalf("expected nil path for /, got %#v", got)
	}
}

func TestParsePointer_LeadingSlashOptional(t *testing.T) {
	with := verity.ParsePointer("/user/name")
	without := verity.ParsePointer("user/name")
	if !reflect.DeepEqual(with, without) {
		t.Fatalf("pointer forms disagree:\n with: %#v\nwithout: %#v", with, without)
	}
}
