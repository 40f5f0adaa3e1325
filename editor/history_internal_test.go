package editor

import "testing"

func TestHistoryPushTruncatesRedoImages(t *testing.T) {
	h := newHistoryLog()
	h.push(HistoryEntry{Kind: HistoryAdd})
	h.push(HistoryEntry{Kind: HistoryAdd})
	h.Head = 1
	h.push(HistoryEntry{Kind: HistoryDelete})
	if len(h.Entries) != 3 || len(h.redo) != 3 || h.Top().Kind != HistoryDelete {
		t.Errorf("log = %+v", h)
	}
}
