// Package storage persists finished Ultimate Tic-Tac-Toe games to an
// embedded BadgerDB, the same JSON-in-Badger idiom the UI layer this
// package was adapted from used for preferences and statistics.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/uttt/internal/uttt"
)

// Storage keys. Completed games are appended under a monotonically
// increasing sequence key so that ListGames can return them in play
// order; the sequence counter itself is also persisted.
const (
	keySeq       = "seq"
	keyGamePrefx = "game/"
)

// GameRecord is a single archived game: its full move list, the final
// board in its compact string encoding, the result as reported by the
// protocol driver ("X", "O", or "draw"), and when it finished.
type GameRecord struct {
	Moves      []string  `json:"moves"`
	FinalBoard string    `json:"final_board"`
	Result     string    `json:"result"`
	FinishedAt time.Time `json:"finished_at"`
}

// Storage wraps BadgerDB for the game archive.
type Storage struct {
	db *badger.DB
}

// Open opens (creating if necessary) a Badger archive at dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // protocol diagnostics go through log, not Badger's own logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) nextSeq() (uint64, error) {
	var n uint64
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySeq))
		if err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		if err == nil {
			if err := item.Value(func(val []byte) error {
				n = decodeSeq(val)
				return nil
			}); err != nil {
				return err
			}
		}
		n++
		return txn.Set([]byte(keySeq), encodeSeq(n))
	})
	return n, err
}

func encodeSeq(n uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(n >> uint(8*(7-i)))
	}
	return b
}

func decodeSeq(b []byte) uint64 {
	var n uint64
	for i := 0; i < 8 && i < len(b); i++ {
		n = n<<8 | uint64(b[i])
	}
	return n
}

// RecordGame archives a finished game under the next sequence number.
func RecordGame(s *Storage, moves []string, final uttt.Board, result string) error {
	seq, err := s.nextSeq()
	if err != nil {
		return err
	}

	rec := GameRecord{
		Moves:      append([]string(nil), moves...),
		FinalBoard: uttt.BoardString(final),
		Result:     result,
		FinishedAt: time.Now(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%020d", keyGamePrefx, seq)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// ListGames returns every archived game in the order it was recorded.
func (s *Storage) ListGames() ([]GameRecord, error) {
	var out []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyGamePrefx)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var rec GameRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

// GameStats summarizes the archive's win/loss/draw counts from X's
// perspective.
type GameStats struct {
	GamesPlayed int
	XWins       int
	OWins       int
	Draws       int
}

// Stats recomputes summary statistics by scanning the archive.
func (s *Storage) Stats() (GameStats, error) {
	games, err := s.ListGames()
	if err != nil {
		return GameStats{}, err
	}

	var stats GameStats
	for _, g := range games {
		stats.GamesPlayed++
		switch g.Result {
		case "X":
			stats.XWins++
		case "O":
			stats.OWins++
		default:
			stats.Draws++
		}
	}
	return stats, nil
}
