package game

import "testing"

func TestImportRoster_MemberFormat(t *testing.T) {
	doc := []byte(`{
		"members": [
			{"name": "Vex", "defense": 2, "will": 1, "shoot": 3, "fight": 1,
			 "ranged": 1, "melee": 0, "accessories": [0, 3], "powers": [1], "mutations": []},
			{"name": "Grub", "defense": 1, "will": 1, "shoot": 1, "fight": 2}
		]
	}`)
	models, err := ImportRoster(doc, TeamA, DefaultRules())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("imported %d models, want 2", len(models))
	}

	vex := models[0]
	if !vex.Leader || vex.Name != "Vex" {
		t.Fatalf("first member should be the leader, got %+v", vex)
	}
	if vex.Tiers != [attributeCount]int{2, 1, 3, 1} {
		t.Fatalf("tiers = %v", vex.Tiers)
	}
	if vex.Ranged == nil || vex.Ranged.Name != "Trench Carbine" {
		t.Fatalf("ranged = %+v, want Trench Carbine", vex.Ranged)
	}
	if vex.Melee == nil || vex.Melee.Name != "Rusted Shiv" {
		t.Fatalf("melee = %+v, want Rusted Shiv", vex.Melee)
	}
	if len(vex.Accessories) != 2 || len(vex.Powers) != 1 {
		t.Fatalf("gear: %d accessories %d powers", len(vex.Accessories), len(vex.Powers))
	}
	if vex.Wounds != vex.WoundsMax() {
		t.Fatal("imported models start at full wounds")
	}

	grub := models[1]
	if grub.Leader || grub.Ranged != nil || grub.Melee != nil {
		t.Fatalf("second member should be an unarmed follower, got %+v", grub)
	}
}

func TestImportRoster_FlatFormat(t *testing.T) {
	doc := []byte(`[
		{"name": "Sludge", "def": 1, "wp": 2, "shoot": 1, "fight": 3},
		{"def": 1, "wp": 1, "shoot": 1, "fight": 1}
	]`)
	models, err := ImportRoster(doc, TeamB, DefaultRules())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if models[0].Tiers != [attributeCount]int{1, 2, 1, 3} {
		t.Fatalf("tiers = %v", models[0].Tiers)
	}
	if models[0].ID != warbandSize || models[1].ID != warbandSize+1 {
		t.Fatalf("team B IDs = %d,%d", models[0].ID, models[1].ID)
	}
	if models[1].Name == "" {
		t.Fatal("a nameless member gets a generated name")
	}
}

func TestImportRoster_BadValuesDegrade(t *testing.T) {
	doc := []byte(`{
		"members": [
			{"name": "Wreck", "defense": 9, "shoot": -4, "ranged": 99, "melee": -1,
			 "accessories": [77]}
		]
	}`)
	models, err := ImportRoster(doc, TeamA, DefaultRules())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	m := models[0]
	// Out-of-range tiers fall back to 1; missing fields too.
	if m.Tiers != [attributeCount]int{1, 1, 1, 1} {
		t.Fatalf("tiers = %v, want all 1", m.Tiers)
	}
	// Bad table references degrade to no equipment, not an error.
	if m.Ranged != nil || m.Melee != nil || len(m.Accessories) != 0 {
		t.Fatalf("bad references should import as unequipped, got %+v", m)
	}
}

func TestImportRoster_SlotCapsEnforced(t *testing.T) {
	doc := []byte(`{
		"members": [
			{"defense": 1, "will": 1, "shoot": 1, "fight": 1,
			 "accessories": [0, 1, 2], "powers": [0, 1], "mutations": [0]}
		]
	}`)
	models, err := ImportRoster(doc, TeamA, DefaultRules())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	m := models[0]
	if len(m.Accessories) != 1 {
		t.Fatalf("defense 1 allows 1 accessory, got %d", len(m.Accessories))
	}
	if got := len(m.Powers) + len(m.Mutations); got != 1 {
		t.Fatalf("will 1 allows 1 gift, got %d", got)
	}
}

func TestImportRoster_UnparseableFails(t *testing.T) {
	if _, err := ImportRoster([]byte(`{"members": [`), TeamA, DefaultRules()); err == nil {
		t.Fatal("truncated JSON must fail the import")
	}
	if _, err := ImportRoster([]byte(``), TeamA, DefaultRules()); err == nil {
		t.Fatal("an empty document must fail the import")
	}
	if _, err := ImportRoster([]byte(`[{]`), TeamB, DefaultRules()); err == nil {
		t.Fatal("a malformed array must fail the import")
	}
}
