package domain

import "sort"

type WordEntry struct {
	Word         string `json:"word"`
	Exposures    int    `json:"exposures"`
	LastSeenTurn int    `json:"last_seen_turn"`
	Mastered     bool   `json:"mastered"`
	CleanStreak  int    `json:"clean_streak"`
	Misses       int    `json:"misses,omitempty"`
}

// KnowledgeSnapshot is a detached copy of a learner's word knowledge.
type KnowledgeSnapshot map[string]WordEntry

func (k KnowledgeSnapshot) Has(word string) bool {
	_, ok := k[word]
	return ok
}

// Entries returns the snapshot sorted by word.
func (k KnowledgeSnapshot) Entries() []WordEntry {
	entries := make([]WordEntry, 0, len(k))
	for _, entry := range k {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	return entries
}

func (k KnowledgeSnapshot) MasteredCount() int {
	count := 0
	for _, entry := range k {
		if entry.Mastered {
			count++
		}
	}
	return count
}

func SnapshotFromEntries(entries []WordEntry) KnowledgeSnapshot {
	snapshot := make(KnowledgeSnapshot, len(entries))
	for _, entry := range entries {
		snapshot[entry.Word] = entry
	}
	return snapshot
}
