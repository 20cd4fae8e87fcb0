package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	filePrefix = "gameState_"
	fileSuffix = ".json"
)

var (
	ErrInvalidID = errors.New("invalid game id")
	ErrNotFound  = errors.New("game state not found")
)

//Store keeps game states as JSON files in one directory
//it does not lock, concurrent saves of the same id race
type Store struct {
	dir string
	now func() time.Time
}

//New creates the Store, the directory is created on the first Save
func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

//Dir returns the storage directory
func (s *Store) Dir() string {
	return s.dir
}

//Save writes the state under id and stamps it with the current time
func (s *Store) Save(id string, st GameState) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create %v: %w", s.dir, err)
	}

	st.DateTime = s.now().UnixNano() / int64(time.Millisecond)
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode game state %q: %w", id, err)
	}

	tmp, err := ioutil.TempFile(s.dir, filePrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("save game state %q: %w", id, err)
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save game state %q: %w", id, err)
	}
	return nil
}

//Load reads the state saved under id
func (s *Store) Load(id string) (GameState, error) {
	var st GameState
	path, err := s.path(id)
	if err != nil {
		return st, err
	}
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return st, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return st, fmt.Errorf("load game state %q: %w", id, err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("decode game state %q: %w", id, err)
	}
	return st, nil
}

//List returns all saved games sorted by id
//a missing directory means no saved games
func (s *Store) List() ([]Entry, error) {
	files, err := ioutil.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list game states: %w", err)
	}

	entries := []Entry{}
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		st, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ID: id, DateTime: st.DateTime})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (s *Store) path(id string) (string, error) {
	if id == "" || id == "." || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.dir, filePrefix+id+fileSuffix), nil
}
