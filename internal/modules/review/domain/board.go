package domain

import "sort"

type BoardEntry struct {
	Problem ProblemRef
	Record  Record
	Status  Status
}

// Board holds every tracked problem bucketed by status.
type Board struct {
	Now     Timestamp
	Buckets map[Status][]BoardEntry
}

// BuildBoard classifies each record at now. Problems without a record are
// not part of the board.
func BuildBoard(problems []ProblemRef, records []Record, schedule Schedule, now Timestamp) Board {
	byID := make(map[int64]ProblemRef, len(problems))
	for _, p := range problems {
		byID[p.ID] = p
	}
	board := Board{Now: now, Buckets: make(map[Status][]BoardEntry, len(Statuses))}
	for _, st := range Statuses {
		board.Buckets[st] = []BoardEntry{}
	}
	for _, rec := range records {
		p, ok := byID[rec.ProblemID]
		if !ok {
			continue
		}
		st := Classify(rec, schedule, now)
		board.Buckets[st] = append(board.Buckets[st], BoardEntry{Problem: p, Record: rec, Status: st})
	}
	for st := range board.Buckets {
		entries := board.Buckets[st]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Record.NextReview != entries[j].Record.NextReview {
				return entries[i].Record.NextReview < entries[j].Record.NextReview
			}
			return entries[i].Problem.Slug < entries[j].Problem.Slug
		})
	}
	return board
}
