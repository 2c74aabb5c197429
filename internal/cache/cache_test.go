package cache

import (
	"path/filepath"
	"testing"
)

func providers(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	return map[string]Store{
		"json":   NewJSONStore(filepath.Join(dir, "daybook.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "daybook.db")),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("init failed: %v", err)
			}
			defer store.Close()

			// Absent key is first-run state, not an error
			_, ok, err := store.Get("diary_entries_u1")
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if ok {
				t.Error("expected absent key on fresh store")
			}

			if err := store.Set("diary_entries_u1", `[{"id":"e1"}]`); err != nil {
				t.Fatalf("set failed: %v", err)
			}

			v, ok, err := store.Get("diary_entries_u1")
			if err != nil || !ok {
				t.Fatalf("get after set: ok=%v err=%v", ok, err)
			}
			if v != `[{"id":"e1"}]` {
				t.Errorf("unexpected value: %s", v)
			}

			// Overwrite replaces the whole value
			if err := store.Set("diary_entries_u1", `[]`); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			v, _, _ = store.Get("diary_entries_u1")
			if v != `[]` {
				t.Errorf("overwrite not applied: %s", v)
			}

			if err := store.Delete("diary_entries_u1"); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			_, ok, _ = store.Get("diary_entries_u1")
			if ok {
				t.Error("key still present after delete")
			}
		})
	}
}

func TestStoreKeys(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("init failed: %v", err)
			}
			defer store.Close()

			for _, k := range []string{"@daily_user_stats", "@daily_achievements", "health_data_u1"} {
				if err := store.Set(k, "{}"); err != nil {
					t.Fatalf("set %s failed: %v", k, err)
				}
			}

			keys, err := store.Keys()
			if err != nil {
				t.Fatalf("keys failed: %v", err)
			}
			if len(keys) != 3 {
				t.Errorf("expected 3 keys, got %d: %v", len(keys), keys)
			}
		})
	}
}

func TestLoadRequiresInit(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Load(); err == nil {
				t.Error("load on uninitialized store should fail")
			}
		})
	}
}

func TestJSONStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.json")

	first := NewJSONStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := first.Set("@daily_achievements", `[{"id":"first_entry"}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	second := NewJSONStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	v, ok, err := second.Get("@daily_achievements")
	if err != nil || !ok {
		t.Fatalf("get after reload: ok=%v err=%v", ok, err)
	}
	if v != `[{"id":"first_entry"}]` {
		t.Errorf("value lost across reload: %s", v)
	}
}

func TestOwnerKeys(t *testing.T) {
	if EntriesKey("") != "diary_entries" {
		t.Errorf("anonymous entries key: %s", EntriesKey(""))
	}
	if EntriesKey("u1") != "diary_entries_u1" {
		t.Errorf("owner entries key: %s", EntriesKey("u1"))
	}
	if HealthKey("u1") != "health_data_u1" {
		t.Errorf("health key: %s", HealthKey("u1"))
	}
	if HabitsKey("u1") != "@daily_habits_u1" {
		t.Errorf("habits key: %s", HabitsKey("u1"))
	}
	if CompletionsKey("u1") != "@daily_habit_entries_u1" {
		t.Errorf("completions key: %s", CompletionsKey("u1"))
	}
}
