package automatic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestSeedRange(t *testing.T) {
	is := is.New(t)
	is.Equal(SeedRange(5, 3), []uint64{5, 6, 7})
	is.Equal(len(SeedRange(5, 0)), 0)
}

func TestSaveLoadSeeds(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := append(GenerateSeeds(4), 0, 1<<63)
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)
}

func TestLoadSeedsErrors(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	_, err := LoadSeeds(filepath.Join(dir, "missing.txt"))
	is.True(err != nil)

	path := filepath.Join(dir, "bad.txt")
	is.NoErr(os.WriteFile(path, []byte("# seeds\n\n12\nnot-a-seed\n"), 0o644))
	_, err = LoadSeeds(path)
	is.Equal(err.Error(), `bad seed at line 4: strconv.ParseUint: parsing "not-a-seed": invalid syntax`)
}
