package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/binsort/internal/games/binsort"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("schema version = %d, expected %d", version, len(migrations))
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{GameID: "binsort", PlayerName: "AMY", Score: 70}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("binsort", 10)
	if err != nil || len(scores) != 1 || scores[0].Level != 1 {
		t.Fatalf("after reopen TopScores() = %+v, %v", scores, err)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("created_at should be parsed")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "binsort", PlayerName: "AMY", Score: 100, BestCombo: 4, Level: 3},
		{GameID: "binsort", PlayerName: "BEN", Score: 50, BestCombo: 1, Level: 2},
		{GameID: "binsort", PlayerName: "CAT", Score: 200, BestCombo: 9, Level: 6},
		{GameID: "binsort_rotating", PlayerName: "DAN", Score: 500, Level: 9},
	}
	for _, run := range runs {
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	scores, err := store.TopScores("binsort", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	expected := []string{"CAT", "AMY", "BEN"}
	for i, name := range expected {
		if scores[i].PlayerName != name {
			t.Errorf("rank %d: expected %s, got %s", i+1, name, scores[i].PlayerName)
		}
	}
	if scores[0].BestCombo != 9 || scores[0].Level != 6 {
		t.Errorf("run details not stored: %+v", scores[0])
	}

	rotating, err := store.TopScores("binsort_rotating", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(rotating) != 1 {
		t.Errorf("Expected 1 rotating score, got %d", len(rotating))
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i, name := range []string{"A", "B", "C", "D", "E"} {
		score := (i + 1) * 100
		if name == "E" {
			score = 400
		}
		store.SaveRun(Run{GameID: "test", PlayerName: name, Score: score})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// D and E tie at 400; the earlier run ranks first
	if scores[0].PlayerName != "D" || scores[1].PlayerName != "E" || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("binsort")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRun(Run{GameID: "binsort", Score: 100})
	store.SaveRun(Run{GameID: "binsort", Score: 300})
	store.SaveRun(Run{GameID: "binsort", Score: 200})

	high, err = store.HighScore("binsort")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "binsort", Score: 100})
	store.SaveRun(Run{GameID: "binsort", Score: 200})
	store.SaveRun(Run{GameID: "binsort_sudden", Score: 300})

	n, err := store.ClearScores("binsort")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() removed %d runs, expected 2", n)
	}

	classic, _ := store.TopScores("binsort", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	sudden, _ := store.TopScores("binsort_sudden", 10)
	if len(sudden) != 1 {
		t.Errorf("Sudden scores should not be affected by clearing classic")
	}
}

func TestStoreTopScoresUnlimited(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun(Run{GameID: "test", Score: i*10})
	}

	scores, err := store.TopScores("test", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Get("missing")
	if err != nil || value != nil {
		t.Fatalf("Get(missing) = %q, %v; expected nil, nil", value, err)
	}

	if err := store.Put("k", []byte("one")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("k", []byte("two")); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}
	value, err = store.Get("k")
	if err != nil || string(value) != "two" {
		t.Errorf("Get(k) = %q, %v; expected two", value, err)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if value, _ := store.Get("k"); value != nil {
		t.Error("key should be gone after Delete")
	}
}

func TestStoreBacksHighScoreBoard(t *testing.T) {
	store := openTestStore(t)
	date := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)

	var kv binsort.KeyValue = store
	board := binsort.NewBoard(5)
	board.Record(binsort.Entry{Name: "AMY", Points: 42, Date: date})
	if err := board.Save(kv, "binsort.highscores"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	restored := binsort.NewBoard(5)
	if err := restored.Load(kv, "binsort.highscores"); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	entries := restored.Entries()
	if len(entries) != 1 || entries[0].Name != "AMY" || entries[0].Points != 42 {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestStoreUpdate(t *testing.T) {
	store := openTestStore(t)

	var seen []byte
	err := store.Update("k", func(old []byte) ([]byte, error) {
		seen = old
		return []byte("one"), nil
	})
	if err != nil || seen != nil {
		t.Fatalf("Update(absent) err=%v old=%q; expected nil old", err, seen)
	}

	boom := errors.New("boom")
	err = store.Update("k", func([]byte) ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Update() error = %v, expected boom", err)
	}
	if value, _ := store.Get("k"); string(value) != "one" {
		t.Errorf("failed update changed the value to %q", value)
	}
}

func TestStoreConcurrentUpdatesAreSerialized(t *testing.T) {
	store := openTestStore(t)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Update("counter", func(old []byte) ([]byte, error) {
				return append(old, 'x'), nil
			})
			if err != nil {
				t.Errorf("Update() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	value, err := store.Get("counter")
	if err != nil || len(value) != writers {
		t.Errorf("counter = %q, %v; expected %d updates", value, err, writers)
	}
}

func TestStoreCommitsBoardsFromTwoSessions(t *testing.T) {
	store := openTestStore(t)
	date := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)

	var kv binsort.KeyValue = store
	if _, ok := kv.(binsort.Updater); !ok {
		t.Fatal("Store should implement binsort.Updater")
	}

	a, b := binsort.NewBoard(5), binsort.NewBoard(5)
	for _, board := range []*binsort.Board{a, b} {
		if err := board.Load(kv, "binsort.highscores"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := a.Commit(kv, "binsort.highscores", binsort.Entry{Name: "AMY", Points: 5, Date: date}); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if _, err := b.Commit(kv, "binsort.highscores", binsort.Entry{Name: "BEN", Points: 9, Date: date}); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	restored := binsort.NewBoard(5)
	if err := restored.Load(kv, "binsort.highscores"); err != nil {
		t.Fatal(err)
	}
	entries := restored.Entries()
	if len(entries) != 2 || entries[0].Name != "BEN" || entries[1].Name != "AMY" {
		t.Errorf("stored entries = %+v, expected BEN then AMY", entries)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "binsort", PlayerName: "A", Score: 10, BestCombo: 2})
	store.SaveRun(Run{GameID: "binsort", PlayerName: "B", Score: 30, BestCombo: 7})

	empty, err := store.GetGameStats("binsort_sudden")
	if err != nil || empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats of an unplayed variant = %+v, %v", empty, err)
	}

	stats, err := store.GetGameStats("binsort")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.BestCombo != 7 {
		t.Errorf("unexpected stats %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["binsort"].TotalScore != 40 {
		t.Errorf("unexpected all-games stats %+v", all)
	}
}
