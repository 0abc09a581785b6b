package gfsi

// InnerJoin combines left and right on key. Output follows left row order;
// a left row pairs with every right row sharing its key, in right order.
// Non-key columns present on both sides get suffixes[0] / suffixes[1].
func InnerJoin(left, right Frame, key string, suffixes [2]string) (Frame, error) {
	li, ri := left.Index(key), right.Index(key)
	if li < 0 {
		return Frame{}, &SchemaError{Table: left.Name, Missing: []string{key}}
	}
	if ri < 0 {
		return Frame{}, &SchemaError{Table: right.Name, Missing: []string{key}}
	}

	inRight := make(map[string]bool, len(right.Columns))
	for _, c := range right.Columns {
		inRight[c] = true
	}
	inLeft := make(map[string]bool, len(left.Columns))
	for _, c := range left.Columns {
		inLeft[c] = true
	}

	out := Frame{Name: left.Name + "+" + right.Name}
	leftCols := make([]int, 0, len(left.Columns))
	for i, c := range left.Columns {
		if i == li {
			out.Columns = append(out.Columns, key)
			leftCols = append(leftCols, i)
			continue
		}
		if inRight[c] {
			c += suffixes[0]
		}
		out.Columns = append(out.Columns, c)
		leftCols = append(leftCols, i)
	}
	rightCols := make([]int, 0, len(right.Columns))
	for i, c := range right.Columns {
		if i == ri {
			continue
		}
		if inLeft[c] {
			c += suffixes[1]
		}
		out.Columns = append(out.Columns, c)
		rightCols = append(rightCols, i)
	}

	byKey := make(map[string][]int, len(right.Rows))
	for r, row := range right.Rows {
		k := cell(row, ri)
		byKey[k] = append(byKey[k], r)
	}

	for _, lrow := range left.Rows {
		for _, r := range byKey[cell(lrow, li)] {
			joined := make([]string, 0, len(out.Columns))
			joined = append(joined, pick(lrow, leftCols)...)
			joined = append(joined, pick(right.Rows[r], rightCols)...)
			out.Rows = append(out.Rows, joined)
		}
	}
	return out, nil
}
