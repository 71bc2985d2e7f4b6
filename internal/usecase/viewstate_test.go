package usecase

import "testing"

func TestViewStateCommitNewest(t *testing.T) {
	k := NewViewStateKeeper()
	gen := k.Begin("overview")
	if !k.Commit("overview", gen, "v1") {
		t.Fatal("commit of current generation rejected")
	}
	v, ok := k.Current("overview")
	if !ok || v != "v1" {
		t.Fatalf("expected v1, got %v", v)
	}
}

func TestViewStateDiscardsStaleCycle(t *testing.T) {
	k := NewViewStateKeeper()
	slow := k.Begin("overview")
	fast := k.Begin("overview")

	if !k.Commit("overview", fast, "fresh") {
		t.Fatal("newest cycle rejected")
	}
	// the slow cycle finishes later with stale data
	if k.Commit("overview", slow, "stale") {
		t.Fatal("superseded cycle was committed")
	}
	v, _ := k.Current("overview")
	if v != "fresh" {
		t.Fatalf("stale data overwrote fresh: %v", v)
	}
}

func TestViewStateScreensIndependent(t *testing.T) {
	k := NewViewStateKeeper()
	g1 := k.Begin("overview")
	g2 := k.Begin("platforms")
	k.Commit("overview", g1, "a")
	k.Commit("platforms", g2, "b")

	if v, _ := k.Current("overview"); v != "a" {
		t.Fatalf("overview state clobbered: %v", v)
	}
	if v, _ := k.Current("platforms"); v != "b" {
		t.Fatalf("platforms state clobbered: %v", v)
	}
}

func TestViewStateEmpty(t *testing.T) {
	k := NewViewStateKeeper()
	if _, ok := k.Current("overview"); ok {
		t.Fatal("expected no view before first commit")
	}
	if _, ok := k.CommittedAt("overview"); ok {
		t.Fatal("expected no commit time before first commit")
	}
}
