package application

import (
	"sort"
	"strings"

	"github.com/bnema/sparky/internal/domain"
)

// WordStore tracks per-word exposure for one session. It is owned by a single
// session and is not safe for concurrent use.
type WordStore struct {
	masteryThreshold int
	entries          map[string]domain.WordEntry
}

func NewWordStore(masteryThreshold int) *WordStore {
	if masteryThreshold < 1 {
		masteryThreshold = 1
	}
	return &WordStore{
		masteryThreshold: masteryThreshold,
		entries:          map[string]domain.WordEntry{},
	}
}

// RecordExposure creates the entry on first sight and otherwise bumps it.
func (s *WordStore) RecordExposure(word string, turn int) domain.WordEntry {
	word = strings.TrimSpace(word)
	entry, ok := s.entries[word]
	if !ok {
		entry = domain.WordEntry{Word: word}
	}

	entry.Exposures++
	entry.CleanStreak++
	if turn > entry.LastSeenTurn || !ok {
		entry.LastSeenTurn = turn
	}
	if entry.CleanStreak >= s.masteryThreshold {
		entry.Mastered = true
	}

	s.entries[word] = entry
	return entry
}

// RecordMiss resets the clean streak of a known word. Unknown words are
// ignored; mastery is never revoked.
func (s *WordStore) RecordMiss(word string) {
	entry, ok := s.entries[word]
	if !ok {
		return
	}
	entry.CleanStreak = 0
	entry.Misses++
	s.entries[word] = entry
}

func (s *WordStore) Lookup(word string) (domain.WordEntry, bool) {
	entry, ok := s.entries[word]
	return entry, ok
}

// LeastRecentlySeen returns up to n words ordered by last sighting, oldest
// first. Ties are broken by word.
func (s *WordStore) LeastRecentlySeen(n int) []string {
	if n <= 0 {
		return nil
	}

	entries := make([]domain.WordEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LastSeenTurn != entries[j].LastSeenTurn {
			return entries[i].LastSeenTurn < entries[j].LastSeenTurn
		}
		return entries[i].Word < entries[j].Word
	})

	if n > len(entries) {
		n = len(entries)
	}
	words := make([]string, 0, n)
	for _, entry := range entries[:n] {
		words = append(words, entry.Word)
	}
	return words
}

func (s *WordStore) Snapshot() domain.KnowledgeSnapshot {
	snapshot := make(domain.KnowledgeSnapshot, len(s.entries))
	for word, entry := range s.entries {
		snapshot[word] = entry
	}
	return snapshot
}

func (s *WordStore) Len() int {
	return len(s.entries)
}

// restore replaces the store content with entries, as recorded in a
// trajectory step.
func (s *WordStore) restore(entries []domain.WordEntry) {
	s.entries = make(map[string]domain.WordEntry, len(entries))
	for _, entry := range entries {
		s.entries[entry.Word] = entry
	}
}
