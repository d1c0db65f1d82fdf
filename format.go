package dircmp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	colorRed    = 1
	colorGreen  = 2
	colorYellow = 3
	colorCyan   = 6
)

const (
	modeFont = 3

	styleNormal = 0
	styleBold   = 1
)

func colored(str string, color, mode, style int) string {
	var sb strings.Builder
	if style > 0 {
		sb.WriteString("\033[")
		sb.WriteString(strconv.Itoa(style))
		sb.WriteString("m")
	}
	sb.WriteString("\033[")
	sb.WriteString(strconv.Itoa(mode))
	sb.WriteString(strconv.Itoa(color))
	sb.WriteString("m")
	sb.WriteString(str)
	sb.WriteString("\033[0m") // reset
	return sb.String()
}

// reporter renders comparison output. Write errors are ignored as they are
// for fmt.Println.
type reporter struct {
	w     io.Writer
	color bool
}

func (r *reporter) paint(str string, color, style int) string {
	if !r.color {
		return str
	}
	return colored(str, color, modeFont, style)
}

func (r *reporter) println(str string) {
	fmt.Fprintln(r.w, str)
}

func (r *reporter) header(title string) {
	r.println(r.paint(title, colorYellow, styleBold))
}

func (r *reporter) paths(title, root string, names []string, join func(string, string) string) {
	if len(names) == 0 {
		return
	}

	r.header(title)
	for _, name := range names {
		r.println(join(root, name))
	}
}

func (r *reporter) fileDifference(d *FileDifference) {
	r.println("Difference in file: " + r.paint(d.Path, colorCyan, styleNormal))
	if d.LineCountMismatch {
		return
	}

	r.println(fmt.Sprintf("Line %d, Char %d:", d.Line, d.Char))
	r.println(r.paint("- "+d.LeftLine, colorRed, styleNormal))
	r.println(r.paint("- "+string(d.LeftChar), colorRed, styleNormal))
	r.println(r.paint("+ "+d.RightLine, colorGreen, styleNormal))
	r.println(r.paint("+ "+string(d.RightChar), colorGreen, styleNormal))
}

func (r *reporter) verdict(identical bool) {
	if identical {
		r.println(r.paint("The folders are identical.", colorGreen, styleBold))
		return
	}
	r.println(r.paint("The folders are not identical.", colorRed, styleBold))
}
