package dataloaders

import (
	"bufio"
	"database/sql"
	"io"
	"os"

	_ "modernc.org/sqlite"
)

// Word databases are SQLite files with the words in the word column of a
// words table. Other tables and columns are ignored.
const wordDBQuery = "SELECT word FROM words"

type wordDBReader struct {
	*io.PipeReader
	db   *sql.DB
	done chan struct{}
}

func (w *wordDBReader) Close() error {
	w.PipeReader.Close()
	<-w.done
	return w.db.Close()
}

// OpenWordDB streams the words in the SQLite word database at path as a
// word list, one word per line.
func OpenWordDB(path string) (io.ReadCloser, error) {
	// sqlite would create a missing file
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(wordDBQuery)
	if err != nil {
		db.Close()
		return nil, err
	}
	pr, pw := io.Pipe()
	r := &wordDBReader{PipeReader: pr, db: db, done: make(chan struct{})}
	go func() {
		defer close(r.done)
		defer rows.Close()
		bw := bufio.NewWriter(pw)
		var word string
		for rows.Next() {
			if err := rows.Scan(&word); err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := bw.WriteString(word + "\n"); err != nil {
				// the reader went away
				return
			}
		}
		if err := rows.Err(); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := bw.Flush(); err != nil {
			return
		}
		pw.Close()
	}()
	return r, nil
}
