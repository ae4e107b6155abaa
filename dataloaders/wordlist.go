package dataloaders

import (
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Word lists are looked for with these extensions, in this order.
var wordListExtensions = []string{".txt", ".txt.gz", ".db", ""}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipReadCloser) Close() error {
	gerr := g.Reader.Close()
	ferr := g.f.Close()
	if gerr != nil {
		return gerr
	}
	return ferr
}

// Open opens a word list, transparently decompressing it if its name ends
// in .gz. Files ending in .db are read as word databases.
func Open(path string) (io.ReadCloser, error) {
	if strings.HasSuffix(path, ".db") {
		return OpenWordDB(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{Reader: gz, f: f}, nil
}

// WordListForLexicon opens the word list for lexiconName in lexiconDir,
// e.g. NWL23.txt, NWL23.txt.gz or NWL23.db.
func WordListForLexicon(lexiconDir string, lexiconName string) (io.ReadCloser, error) {
	for _, ext := range wordListExtensions {
		path := filepath.Join(lexiconDir, lexiconName+ext)
		file, err := Open(path)
		if err == nil {
			log.Debug().Str("path", path).Msg("opened-word-list")
			return file, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: filepath.Join(lexiconDir, lexiconName), Err: fs.ErrNotExist}
}
