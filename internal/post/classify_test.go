package post

import "testing"

func TestDetectScenarios(t *testing.T) {
	cases := []struct {
		content string
		want    Category
	}{
		{"Heavy traffic jam on highway", CategoryTraffic},
		{"accident near the toll plaza", CategoryTraffic},
		{"robbery reported last night", CategorySafety},
		{"20% discount at the petrol station", CategoryDeals},
		{"clean toilet at the rest area", CategoryAmenities},
		{"nice weather today", CategoryGeneral},
		{"", CategoryGeneral},
	}
	for _, tc := range cases {
		if got := Detect(tc.content); got != tc.want {
			t.Fatalf("Detect(%q) = %s, want %s", tc.content, got, tc.want)
		}
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	if Detect("TRAFFIC JAM AHEAD") != CategoryTraffic {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestDetectOrderWins(t *testing.T) {
	// content holds both a TRAFFIC and a SAFETY keyword; TRAFFIC is declared
	// first and must win
	if Detect("avoid the traffic jam") != CategoryTraffic {
		t.Fatalf("expected first declared category to win")
	}
}

func TestDetectSubstringInsideWord(t *testing.T) {
	// "freelance" embeds the DEALS keyword "free"
	if Detect("looking for freelance work") != CategoryDeals {
		t.Fatalf("expected embedded keyword to match")
	}
}

func TestResolveCategory(t *testing.T) {
	// no selection: classifier result, AUTO
	cat, src := resolveCategory("traffic jam", "")
	if cat != CategoryTraffic || src != SourceAuto {
		t.Fatalf("unexpected: %s %s", cat, src)
	}

	// selection agrees with detection: still AUTO
	cat, src = resolveCategory("traffic jam", CategoryTraffic)
	if cat != CategoryTraffic || src != SourceAuto {
		t.Fatalf("unexpected: %s %s", cat, src)
	}

	// selection overrides detection: MANUAL, selection wins
	cat, src = resolveCategory("traffic jam", CategorySafety)
	if cat != CategorySafety || src != SourceManual {
		t.Fatalf("unexpected: %s %s", cat, src)
	}

	// a GENERAL selection never blocks the classifier
	cat, src = resolveCategory("Heavy traffic jam on highway", CategoryGeneral)
	if cat != CategoryTraffic || src != SourceAuto {
		t.Fatalf("unexpected: %s %s", cat, src)
	}

	// GENERAL selection with unclassifiable content stays GENERAL, AUTO
	cat, src = resolveCategory("nice weather today", CategoryGeneral)
	if cat != CategoryGeneral || src != SourceAuto {
		t.Fatalf("unexpected: %s %s", cat, src)
	}
}

func TestFilterByCategory(t *testing.T) {
	posts := []Post{
		{ID: "1", Category: CategoryTraffic},
		{ID: "2", Category: CategoryGeneral},
		{ID: "3", Category: CategoryTraffic},
	}

	all := FilterByCategory(posts, "ALL")
	if len(all) != 3 {
		t.Fatalf("ALL should pass through")
	}

	traffic := FilterByCategory(posts, "TRAFFIC")
	if len(traffic) != 2 || traffic[0].ID != "1" || traffic[1].ID != "3" {
		t.Fatalf("unexpected filter result: %+v", traffic)
	}

	// idempotent: filtering an already-filtered list changes nothing
	again := FilterByCategory(traffic, "TRAFFIC")
	if len(again) != len(traffic) {
		t.Fatalf("filter not idempotent")
	}
	for i := range again {
		if again[i].ID != traffic[i].ID {
			t.Fatalf("filter not idempotent")
		}
	}
}
