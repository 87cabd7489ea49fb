package humanizer

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff computes the edits that turn before into after. Positions are byte
// offsets into before, and applying the edits from last to first rebuilds
// after exactly.
func Diff(before, after string) []Edit {
	out := []Edit{}
	if before == after {
		return out
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var (
		pos     int
		pending *Edit
	)
	flush := func() {
		if pending != nil {
			out = append(out, *pending)
			pending = nil
		}
	}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			pos += len(d.Text)
		case diffmatchpatch.DiffDelete:
			if pending == nil {
				pending = &Edit{Position: pos}
			}
			pending.Original += d.Text
			pos += len(d.Text)
		case diffmatchpatch.DiffInsert:
			if pending == nil {
				pending = &Edit{Position: pos}
			}
			pending.Humanized += d.Text
		}
	}
	flush()
	return out
}

// Apply replays edits produced by Diff against before.
func Apply(before string, edits []Edit) string {
	out := before
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		end := e.Position + len(e.Original)
		if e.Position < 0 || end > len(out) || out[e.Position:end] != e.Original {
			continue
		}
		out = out[:e.Position] + e.Humanized + out[end:]
	}
	return out
}
