package process

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadEnvFilesFirstFileWins(t *testing.T) {
	dir := t.TempDir()
	appEnv := filepath.Join(dir, "app.env")
	userEnv := filepath.Join(dir, "user.env")
	if err := os.WriteFile(appEnv, []byte("GROQ_API_KEY=app\nFLASK_ENV=production\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(userEnv, []byte("GROQ_API_KEY=user\nEXTRA=1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	values, loaded, err := LoadEnvFiles([]string{appEnv, filepath.Join(dir, "missing.env"), userEnv})
	if err != nil {
		t.Fatalf("LoadEnvFiles returned error: %v", err)
	}
	if !reflect.DeepEqual(loaded, []string{appEnv, userEnv}) {
		t.Fatalf("unexpected loaded files: %v", loaded)
	}
	want := map[string]string{"GROQ_API_KEY": "app", "FLASK_ENV": "production", "EXTRA": "1"}
	if !reflect.DeepEqual(values, want) {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestMergeEnvKeepsParentValues(t *testing.T) {
	parent := []string{"PATH=/usr/bin", "GROQ_API_KEY=from-shell"}
	merged := MergeEnv(parent, map[string]string{"GROQ_API_KEY": "from-file", "B": "2", "A": "1"})
	want := []string{"PATH=/usr/bin", "GROQ_API_KEY=from-shell", "A=1", "B=2"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("unexpected merged env: %v", merged)
	}
}

func TestMissingKeys(t *testing.T) {
	env := []string{"GROQ_API_KEY=", "OTHER=x"}
	missing := MissingKeys(env, []string{"GROQ_API_KEY", "OTHER", "ABSENT"})
	if !reflect.DeepEqual(missing, []string{"GROQ_API_KEY", "ABSENT"}) {
		t.Fatalf("unexpected missing keys: %v", missing)
	}
}
