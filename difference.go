package dircmp

// FileDifference describes the first mismatch found between two text files.
type FileDifference struct {
	Path string // left-hand path, as reported

	// LineCountMismatch is set when the files have a different number of
	// lines; no position is known in that case.
	LineCountMismatch bool

	Line int // 1-based
	Char int // 1-based, counted in runes

	LeftLine  string
	RightLine string
	LeftChar  rune
	RightChar rune
}

// firstDifference walks both line slices in lockstep. Within a line pair only
// the first min(len) runes are compared, so a longer tail never counts.
func firstDifference(path string, left, right []string) *FileDifference {
	if len(left) != len(right) {
		return &FileDifference{
			Path:              path,
			LineCountMismatch: true,
		}
	}

	for i := range left {
		leftRunes, rightRunes := []rune(left[i]), []rune(right[i])
		n := min(len(leftRunes), len(rightRunes))
		for j := 0; j < n; j++ {
			if leftRunes[j] == rightRunes[j] {
				continue
			}

			return &FileDifference{
				Path:      path,
				Line:      i + 1,
				Char:      j + 1,
				LeftLine:  left[i],
				RightLine: right[i],
				LeftChar:  leftRunes[j],
				RightChar: rightRunes[j],
			}
		}
	}

	return nil
}
