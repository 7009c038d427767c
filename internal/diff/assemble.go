package diff

// assembleRecords folds a line edit script into display records. A delete
// whose immediate successor is an insert pairs with it into one replaced
// record carrying character segments; every other delete or insert stays
// standalone. Line counters start at 1 and advance independently per side.
// Operations whose index falls outside the line slices are skipped rather
// than trusted.
func assembleRecords(ops []EditOp, oldLines, newLines []string) []DiffRecord {
	var records []DiffRecord
	oldLine, newLine := 1, 1

	for idx := 0; idx < len(ops); idx++ {
		op := ops[idx]
		switch op.Kind {
		case OpKeep:
			if op.OldIndex < 0 || op.OldIndex >= len(oldLines) {
				continue
			}
			records = append(records, DiffRecord{
				Kind:    RecordUnchanged,
				OldLine: oldLine,
				NewLine: newLine,
				Text:    oldLines[op.OldIndex],
			})
			oldLine++
			newLine++

		case OpDelete:
			if op.OldIndex < 0 || op.OldIndex >= len(oldLines) {
				continue
			}
			if idx+1 < len(ops) && ops[idx+1].Kind == OpInsert {
				next := ops[idx+1]
				if next.NewIndex >= 0 && next.NewIndex < len(newLines) {
					oldSegs, newSegs := CharDiff(oldLines[op.OldIndex], newLines[next.NewIndex])
					records = append(records, DiffRecord{
						Kind:        RecordReplaced,
						OldLine:     oldLine,
						NewLine:     newLine,
						OldSegments: oldSegs,
						NewSegments: newSegs,
					})
					oldLine++
					newLine++
					idx++
					continue
				}
			}
			records = append(records, DiffRecord{
				Kind:    RecordDeleted,
				OldLine: oldLine,
				Text:    oldLines[op.OldIndex],
			})
			oldLine++

		case OpInsert:
			if op.NewIndex < 0 || op.NewIndex >= len(newLines) {
				continue
			}
			records = append(records, DiffRecord{
				Kind:    RecordAdded,
				NewLine: newLine,
				Text:    newLines[op.NewIndex],
			})
			newLine++
		}
	}
	return records
}
