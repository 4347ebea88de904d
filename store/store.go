// Package store keeps a persistent record of the files the editor has opened
// and saved.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketFiles = "files"

// ErrNotFound is returned by Last when nothing has been recorded.
var ErrNotFound = errors.New("no recorded files")

type Op string

const (
	OpOpen Op = "open"
	OpSave Op = "save"
)

// Entry is one recorded file access.
type Entry struct {
	Seq  int       `json:"-"`
	Path string    `json:"path"`
	Op   Op        `json:"op"`
	Time time.Time `json:"time"`
}

type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path. Another process holding the
// database makes Open fail after one second instead of blocking.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketFiles))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends an access of path. Relative paths are stored as absolute
// paths so entries stay meaningful from any working directory.
func (s *Store) Record(op Op, path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFiles))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(Entry{Path: path, Op: op, Time: time.Now()})
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
}

// Recent returns up to n entries, newest first, keeping only the newest
// entry for each path.
func (s *Store) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketFiles)).Cursor()
		seen := make(map[string]bool)
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			e, err := unmarshalEntry(k, v)
			if err != nil {
				return err
			}
			if seen[e.Path] {
				continue
			}
			seen[e.Path] = true
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// Last returns the newest entry.
func (s *Store) Last() (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		k, v := tx.Bucket([]byte(bucketFiles)).Cursor().Last()
		if k == nil {
			return ErrNotFound
		}
		var err error
		e, err = unmarshalEntry(k, v)
		return err
	})
	return e, err
}

func unmarshalEntry(k, v []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(v, &e); err != nil {
		return Entry{}, fmt.Errorf("history entry %d: %w", unmarshalSeq(k), err)
	}
	e.Seq = int(unmarshalSeq(k))
	return e, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
