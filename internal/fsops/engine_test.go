package fsops

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"fexp/internal/config"
	"fexp/internal/errors"
	"fexp/pkg/testutils"
	"fexp/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []types.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestListDirOrdering(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"b.txt": "b",
		"A.txt": "a",
		"a.txt": "aa",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zdir"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Bdir"), 0o755))

	entries, err := New().ListDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bdir", "zdir", "A.txt", "a.txt", "b.txt"}, names(entries))
	assert.True(t, entries[0].IsDir)
	assert.True(t, entries[1].IsDir)
	assert.False(t, entries[2].IsDir)
	assert.Equal(t, filepath.Join(dir, "Bdir"), entries[0].Path)
}

func TestListDirSymlinkToDirCountsAsDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "alink")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken")))

	entries, err := New().ListDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"alink", "real", "broken"}, names(entries))
}

func TestListDirHidePatterns(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		".hidden":  "",
		"keep.txt": "",
		"old.bak":  "",
	})

	cfg := config.New()
	cfg.Listing.Hide = []string{".*", "*.{bak,swp}"}
	e, err := NewWithConfig(cfg)
	require.NoError(t, err)

	entries, err := e.ListDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, names(entries))

	assert.Error(t, e.SetHidePatterns([]string{"[a-"}))
}

func TestListDirMissing(t *testing.T) {
	_, err := New().ListDir(filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
}

func TestDetails(t *testing.T) {
	dir := t.TempDir()
	path := testutils.CreateTestFile(t, dir, "a.txt", "0123456789")
	require.NoError(t, os.Chmod(path, 0o640))

	e := New()
	entry, err := e.Details(types.Entry{Path: path})
	require.NoError(t, err)

	assert.Equal(t, int64(10), entry.Size)
	assert.False(t, entry.IsDir)
	assert.False(t, entry.ModTime.IsZero())
	assert.NotEmpty(t, entry.Owner)
	assert.NotEmpty(t, entry.Group)
	if runtime.GOOS != "windows" {
		assert.Equal(t, uint64(1), entry.Links)
		assert.Equal(t, "rw-r-----", entry.Perm.String())
	}

	_, err = e.Details(types.Entry{Path: filepath.Join(dir, "nope")})
	assert.True(t, errors.IsFileNotFound(err))
}

func TestSubdirectories(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFile(t, dir, "file.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "one"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "two"), 0o755))

	subs, err := New().Subdirectories(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, subs)

	subs, err = New().Subdirectories(filepath.Join(dir, "one"))
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := testutils.CreateTestFile(t, dir, "src.sh", "#!/bin/sh\necho hi\n")
	require.NoError(t, os.Chmod(src, 0o750))
	dest := filepath.Join(dir, "dest.sh")

	require.NoError(t, New().Copy(src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hi\n", string(data))

	srcData, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, data, srcData, "source must be preserved")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
	}
}

func TestCopyOverwritesAndTruncates(t *testing.T) {
	dir := t.TempDir()
	src := testutils.CreateTestFile(t, dir, "src.txt", "short")
	dest := testutils.CreateTestFile(t, dir, "dest.txt", "a much longer original body")

	require.NoError(t, New().Copy(src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestCopyFileIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	src := testutils.CreateTestFile(t, dir, "a.txt", "payload")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.Mkdir(dst, 0o755))

	assert.Equal(t, filepath.Join(dst, "a.txt"), CopyTarget(src, dst))
	assert.Equal(t, filepath.Join(dir, "b.txt"), CopyTarget(src, filepath.Join(dir, "b.txt")))
	assert.Equal(t, filepath.Join(dir, "other"), CopyTarget(dst, filepath.Join(dir, "other")))

	require.NoError(t, New().Copy(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCopyFileIntoItsOwnDirectory(t *testing.T) {
	dir := t.TempDir()
	src := testutils.CreateTestFile(t, dir, "a.txt", "keep me")

	err := New().Copy(src, dir)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidOperation, errors.KindOf(err))
}

func TestCopyOntoItself(t *testing.T) {
	dir := t.TempDir()
	src := testutils.CreateTestFile(t, dir, "same.txt", "keep me")

	err := New().Copy(src, src)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidOperation, errors.KindOf(err))

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := New().Copy(filepath.Join(dir, "nope"), filepath.Join(dir, "dest"))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestCopyDirectoryRecursively(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested", "deep"), 0o755))
	testutils.CreateTestFile(t, src, "top.txt", "top")
	testutils.CreateTestFile(t, filepath.Join(src, "nested", "deep"), "leaf.txt", "leaf")
	if runtime.GOOS != "windows" {
		require.NoError(t, os.Symlink("top.txt", filepath.Join(src, "link")))
	}

	dest := filepath.Join(dir, "copy")
	require.NoError(t, New().Copy(src, dest))

	data, err := os.ReadFile(filepath.Join(dest, "nested", "deep", "leaf.txt"))
	require.NoError(t, err)
	assert.Equal(t, "leaf", string(data))
	data, err = os.ReadFile(filepath.Join(dest, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(data))

	if runtime.GOOS != "windows" {
		target, err := os.Readlink(filepath.Join(dest, "link"))
		require.NoError(t, err)
		assert.Equal(t, "top.txt", target)
	}

	err = New().Copy(src, filepath.Join(src, "nested", "inside"))
	require.Error(t, err)
	assert.Equal(t, errors.InvalidOperation, errors.KindOf(err))
}

type recordingBar struct {
	bytes.Buffer
	total    int64
	finished bool
}

func (r *recordingBar) Finish() error {
	r.finished = true
	return nil
}

func TestCopyReportsProgressAboveThreshold(t *testing.T) {
	dir := t.TempDir()
	big := testutils.CreateTestFile(t, dir, "big.bin", "0123456789abcdef")
	small := testutils.CreateTestFile(t, dir, "small.bin", "0123")

	var bars []*recordingBar
	e := New()
	e.SetProgress(func(total int64, description string) ProgressWriter {
		b := &recordingBar{total: total}
		bars = append(bars, b)
		assert.Equal(t, "Copying big.bin", description)
		return b
	}, 10)

	require.NoError(t, e.Copy(big, filepath.Join(dir, "big.copy")))
	require.NoError(t, e.Copy(small, filepath.Join(dir, "small.copy")))

	require.Len(t, bars, 1)
	assert.Equal(t, int64(16), bars[0].total)
	assert.Equal(t, "0123456789abcdef", bars[0].String())
	assert.True(t, bars[0].finished)
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := testutils.CreateTestFile(t, dir, "from.txt", "payload")
	dest := filepath.Join(dir, "to.txt")

	require.NoError(t, New().Move(src, dest))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	err = New().Move(src, dest)
	assert.True(t, errors.IsFileNotFound(err))
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "sub"), 0o755))
	testutils.CreateTestFile(t, tree, "f.txt", "x")

	e := New()
	assert.Error(t, e.Remove(tree, false), "non-recursive remove of a non-empty directory must fail")
	_, err := os.Stat(filepath.Join(tree, "f.txt"))
	require.NoError(t, err)

	require.NoError(t, e.Remove(tree, true))
	_, err = os.Stat(tree)
	assert.True(t, os.IsNotExist(err))

	file := testutils.CreateTestFile(t, dir, "single.txt", "x")
	require.NoError(t, e.Remove(file, false))
	exists, err := Exists(file)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateFileAndDir(t *testing.T) {
	dir := t.TempDir()
	e := New()

	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, e.CreateFile(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())

	existing := testutils.CreateTestFile(t, dir, "existing.txt", "data")
	err = e.CreateFile(existing)
	assert.True(t, errors.IsAlreadyExists(err))
	data, _ := os.ReadFile(existing)
	assert.Equal(t, "data", string(data), "existing file must not be truncated")

	sub := filepath.Join(dir, "sub")
	require.NoError(t, e.CreateDir(sub))
	assert.True(t, IsDir(sub))
	assert.True(t, errors.IsAlreadyExists(e.CreateDir(sub)))

	err = e.CreateDir(filepath.Join(dir, "missing", "child"))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestSearchSubstring(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"app.log":     "",
		"catalog.txt": "",
		"readme.md":   "",
		"LOG.txt":     "",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs", "old"), 0o755))
	testutils.CreateTestFile(t, filepath.Join(dir, "logs", "old"), "x.log", "")

	var found []types.Entry
	n, err := New().Search(dir, "log", func(e types.Entry) { found = append(found, e) })
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got := map[string]bool{}
	for _, e := range found {
		got[e.Path] = e.IsDir
	}
	assert.Equal(t, map[string]bool{
		filepath.Join(dir, "app.log"):              false,
		filepath.Join(dir, "catalog.txt"):          false,
		filepath.Join(dir, "logs"):                 true,
		filepath.Join(dir, "logs", "old", "x.log"): false,
	}, got)
}

func TestSearchNoMatchesAndRootExcluded(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logroot")
	require.NoError(t, os.Mkdir(dir, 0o755))
	testutils.CreateTestFile(t, dir, "a.txt", "")

	n, err := New().Search(dir, "log", func(types.Entry) { t.Fatal("unexpected match") })
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearchStopsOnTraversalError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs a non-root unix user to make a directory unreadable")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	testutils.CreateTestFile(t, locked, "secret.log", "")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, err := New().Search(dir, "log", func(types.Entry) {})
	require.Error(t, err)
	assert.True(t, errors.IsFileAccessDenied(err))
}

func TestPermChangeApply(t *testing.T) {
	start := types.Perm(0o640) | types.SetGID

	tests := []struct {
		change PermChange
		want   string
	}{
		{AddRead, "rw-r--r--"},
		{AddWrite, "rw-rw-rw-"},
		{AddExec, "rwxr-x--x"},
		{RemoveRead, "-w-------"},
		{RemoveWrite, "r--r-----"},
		{RemoveExec, "rw-r-----"},
		{ReadOnly, "r--r--r--"},
		{SetOctal, "rwxr-xr-x"},
	}
	for _, tt := range tests {
		got, ok := tt.change.Apply(start, 0o755)
		require.True(t, ok)
		assert.Equal(t, tt.want, got.String(), "change %d", tt.change)
	}

	got, _ := AddRead.Apply(start, 0)
	assert.True(t, got.Has(types.SetGID), "rwx edits keep special bits")
	got, _ = ReadOnly.Apply(start, 0)
	assert.Equal(t, types.AllRead, got, "read-only drops everything else")

	got, ok := PermChange(42).Apply(start, 0)
	assert.False(t, ok)
	assert.Equal(t, start, got)
}

func TestPermissionsAndChmod(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}
	dir := t.TempDir()
	path := testutils.CreateTestFile(t, dir, "p.txt", "")

	e := New()
	require.NoError(t, e.Chmod(path, 0o755))
	perm, err := e.Permissions(path)
	require.NoError(t, err)
	assert.Equal(t, "rwxr-xr-x", perm.String())

	require.NoError(t, e.Chmod(path, types.AllRead))
	perm, err = e.Permissions(path)
	require.NoError(t, err)
	assert.Equal(t, "r--r--r--", perm.String())

	assert.True(t, errors.IsFileNotFound(e.Chmod(filepath.Join(dir, "nope"), 0o644)))
}

func TestResolveDirAndCanonical(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	file := testutils.CreateTestFile(t, dir, "f.txt", "")

	got, err := ResolveDir(filepath.Join(sub, "..", "sub", "."))
	require.NoError(t, err)
	assert.Equal(t, sub, got)

	_, err = ResolveDir(file)
	assert.True(t, errors.IsNotADirectory(err))
	_, err = ResolveDir(filepath.Join(dir, "missing"))
	assert.True(t, errors.IsFileNotFound(err))

	realSub, err := filepath.EvalSymlinks(sub)
	require.NoError(t, err)
	canon, err := Canonical(filepath.Join(sub, ".."+string(filepath.Separator)+"sub"))
	require.NoError(t, err)
	assert.Equal(t, realSub, canon)

	if runtime.GOOS != "windows" {
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(sub, link))
		canon, err = Canonical(link)
		require.NoError(t, err)
		assert.Equal(t, realSub, canon)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := Exists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.False(t, ok)

	if runtime.GOOS != "windows" {
		dangling := filepath.Join(dir, "dangling")
		require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), dangling))
		ok, err = Exists(dangling)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
