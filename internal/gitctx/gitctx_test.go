package gitctx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestChangedFiles(t *testing.T) {
	diff := `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,3 +1,4 @@
+import "fmt"
diff --git a/util.go b/util.go
--- a/util.go
+++ b/util.go
@@ -5,3 +5,4 @@
+func helper() {}
+++ b/main.go
`
	files := ChangedFiles(diff)
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2 (deduplicated): %v", len(files), files)
	}
	if files[0] != "main.go" || files[1] != "util.go" {
		t.Errorf("files = %v", files)
	}
	if got := ChangedFiles(""); len(got) != 0 {
		t.Errorf("ChangedFiles(\"\") = %v", got)
	}
}

func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}

	run("git", "init")
	run("git", "checkout", "-b", "main")
	os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644)
	run("git", "add", "-A")
	run("git", "commit", "-m", "init")

	return dir
}

func TestLocalSource(t *testing.T) {
	dir := setupTestRepo(t)
	ctx := context.Background()

	staged := LocalSource{Dir: dir}
	unstaged := LocalSource{Dir: dir, Unstaged: true}
	if staged.Name() != "staged" || unstaged.Name() != "unstaged" {
		t.Errorf("names = %q, %q", staged.Name(), unstaged.Name())
	}

	diff, err := staged.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if diff != "" {
		t.Errorf("clean repo should have an empty staged diff, got %q", diff)
	}

	os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() { println(1) }\n"), 0o644)

	diff, _ = staged.Diff(ctx)
	if diff != "" {
		t.Error("unstaged edit should not appear in the staged diff")
	}
	diff, err = unstaged.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !strings.Contains(diff, "println(1)") {
		t.Errorf("unstaged diff = %q", diff)
	}

	cmd := exec.Command("git", "add", "main.go")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}
	diff, err = staged.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !strings.Contains(diff, "+func main() { println(1) }") {
		t.Errorf("staged diff = %q", diff)
	}
}

func TestGetRepoMeta(t *testing.T) {
	dir := setupTestRepo(t)
	meta, err := GetRepoMeta(context.Background(), dir)
	if err != nil {
		t.Fatalf("GetRepoMeta error: %v", err)
	}
	if meta.Branch != "main" {
		t.Errorf("Branch = %q, want main", meta.Branch)
	}
	if len(meta.Head) != 40 {
		t.Errorf("Head = %q", meta.Head)
	}
	if meta.Root == "" {
		t.Error("Root should be set")
	}
}

func TestStaged_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	if _, err := Staged(context.Background(), dir); err == nil {
		t.Error("expected error outside a repository")
	}
	if _, err := GetRepoMeta(context.Background(), dir); err == nil {
		t.Error("expected error outside a repository")
	}
}

func TestGitDir(t *testing.T) {
	dir := setupTestRepo(t)
	got, err := GitDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("GitDir error: %v", err)
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(dir, ".git"))
	if resolved, _ := filepath.EvalSymlinks(got); resolved != want {
		t.Errorf("GitDir = %q, want %q", got, want)
	}

	if _, err := GitDir(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error outside a repository")
	}
}
