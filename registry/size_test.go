package registry

import (
	"context"
	"testing"
)

func sizedPackage(name, ver string, size int64, deps ...string) *Package {
	return newTestPackage(name, ver, deps, nil,
		ReleaseFile{PackageType: PackageTypeWheel, Size: size})
}

func TestComputeSizeImpact_Linear(t *testing.T) {
	index := &fakeIndex{packages: map[string]*Package{
		"app":  sizedPackage("app", "1.0", 100, "lib"),
		"lib":  sizedPackage("lib", "2.0", 50, "util"),
		"util": sizedPackage("util", "0.3", 25),
	}}
	c := newTestClient(t, index)

	impact := c.ComputeSizeImpact(context.Background(), "app")
	if impact.TotalSize != 175 {
		t.Errorf("TotalSize = %d, want 175", impact.TotalSize)
	}
	if impact.PackageSize != 100 {
		t.Errorf("PackageSize = %d, want 100", impact.PackageSize)
	}
	if impact.DependenciesSize != 75 {
		t.Errorf("DependenciesSize = %d, want 75", impact.DependenciesSize)
	}
	if len(impact.Breakdown) != 3 {
		t.Errorf("Breakdown has %d entries, want 3: %v", len(impact.Breakdown), impact.Breakdown)
	}
}

func TestComputeSizeImpact_Cycle(t *testing.T) {
	// a and b declare each other. The walk must terminate and count each once.
	index := &fakeIndex{packages: map[string]*Package{
		"a": sizedPackage("a", "1.0", 10, "b"),
		"b": sizedPackage("b", "1.0", 20, "a"),
	}}
	c := newTestClient(t, index)

	impact := c.ComputeSizeImpact(context.Background(), "a")
	if impact.TotalSize != 30 {
		t.Errorf("TotalSize = %d, want 30", impact.TotalSize)
	}
	if impact.Breakdown["a"] != 10 || impact.Breakdown["b"] != 20 {
		t.Errorf("Breakdown = %v", impact.Breakdown)
	}
}

func TestComputeSizeImpact_DiamondCountsOnce(t *testing.T) {
	// top -> left, right; both depend on shared.
	index := &fakeIndex{packages: map[string]*Package{
		"top":    sizedPackage("top", "1.0", 1, "left", "right"),
		"left":   sizedPackage("left", "1.0", 2, "shared"),
		"right":  sizedPackage("right", "1.0", 4, "shared"),
		"shared": sizedPackage("shared", "1.0", 8),
	}}
	c := newTestClient(t, index)

	impact := c.ComputeSizeImpact(context.Background(), "top")
	if impact.TotalSize != 15 {
		t.Errorf("TotalSize = %d, want 15 (shared counted once)", impact.TotalSize)
	}
}

func TestComputeSizeImpact_MissingDependencyContributesZero(t *testing.T) {
	index := &fakeIndex{packages: map[string]*Package{
		"app": sizedPackage("app", "1.0", 100, "ghost"),
	}}
	c := newTestClient(t, index)

	impact := c.ComputeSizeImpact(context.Background(), "app")
	if impact.TotalSize != 100 {
		t.Errorf("TotalSize = %d, want 100 (unfetchable dep skipped)", impact.TotalSize)
	}
	if _, ok := impact.Breakdown["ghost"]; ok {
		t.Error("unfetchable dependency must not appear in Breakdown")
	}
}

func TestComputeSizeImpact_ExtrasAndMarkersStripped(t *testing.T) {
	index := &fakeIndex{packages: map[string]*Package{
		"app": newTestPackage("app", "1.0",
			[]string{`lib>=1.0`, `extra-dep; extra == "dev"`, "plain (>=2, <3)"}, nil,
			ReleaseFile{PackageType: PackageTypeWheel, Size: 5}),
		"lib":       sizedPackage("lib", "1.2", 7),
		"extra-dep": sizedPackage("extra-dep", "0.1", 11),
		"plain":     sizedPackage("plain", "2.4", 13),
	}}
	c := newTestClient(t, index)

	impact := c.ComputeSizeImpact(context.Background(), "app")
	if impact.TotalSize != 36 {
		t.Errorf("TotalSize = %d, want 36", impact.TotalSize)
	}
}
