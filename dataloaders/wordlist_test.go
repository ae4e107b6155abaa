package dataloaders

import (
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestWordListForLexicon(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "PLAIN.txt"), []byte("CAT\nDOG\n"), 0o644))

	f, err := WordListForLexicon(dir, "PLAIN")
	is.NoErr(err)
	bts, err := io.ReadAll(f)
	is.NoErr(err)
	is.NoErr(f.Close())
	is.Equal(string(bts), "CAT\nDOG\n")
}

func TestWordListGzipped(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	out, err := os.Create(filepath.Join(dir, "ZIPPED.txt.gz"))
	is.NoErr(err)
	gz := gzip.NewWriter(out)
	_, err = gz.Write([]byte("QI\nZA\n"))
	is.NoErr(err)
	is.NoErr(gz.Close())
	is.NoErr(out.Close())

	f, err := WordListForLexicon(dir, "ZIPPED")
	is.NoErr(err)
	bts, err := io.ReadAll(f)
	is.NoErr(err)
	is.NoErr(f.Close())
	is.Equal(string(bts), "QI\nZA\n")
}

func TestWordListMissing(t *testing.T) {
	is := is.New(t)
	_, err := WordListForLexicon(t.TempDir(), "NOPE")
	is.True(errors.Is(err, fs.ErrNotExist))
}
