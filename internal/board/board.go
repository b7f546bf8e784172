// Package board holds the pure kanban semantics for maintenance requests:
// grouping requests into stage columns and deciding what a card drop means.
// Rendering and API calls stay in the TUI layer.
package board

import "gearguard/internal/domain"

// Column is one kanban column: a stage plus the cards currently in it.
type Column struct {
	Stage    domain.Stage
	Requests []domain.MaintenanceRequest
}

// Group buckets requests into one column per stage, in board order.
// Every request lands in exactly the column matching its Stage field;
// requests with an unknown stage are dropped. Card order within a column
// follows the fetched list order.
func Group(requests []domain.MaintenanceRequest) []Column {
	cols := make([]Column, len(domain.Stages))
	index := make(map[domain.Stage]int, len(domain.Stages))
	for i, s := range domain.Stages {
		cols[i] = Column{Stage: s}
		index[s] = i
	}
	for _, r := range requests {
		if i, ok := index[r.Stage]; ok {
			cols[i].Requests = append(cols[i].Requests, r)
		}
	}
	return cols
}

// Move describes the outcome of dropping a picked-up card onto a column.
type Move struct {
	RequestID int
	To        domain.Stage
	// Noop is set when the card was dropped on its current column:
	// no stage-update call should be issued.
	Noop bool
}

// Drop resolves a card drop onto the given stage. Any stage is reachable
// from any other; the only drop that issues nothing is onto the card's
// own column.
func Drop(card domain.MaintenanceRequest, target domain.Stage) Move {
	if card.Stage == target {
		return Move{RequestID: card.ID, To: target, Noop: true}
	}
	return Move{RequestID: card.ID, To: target}
}

// CountByStage returns the per-column card counts shown in column headers.
func CountByStage(requests []domain.MaintenanceRequest) map[domain.Stage]int {
	counts := make(map[domain.Stage]int, len(domain.Stages))
	for _, r := range requests {
		counts[r.Stage]++
	}
	return counts
}
