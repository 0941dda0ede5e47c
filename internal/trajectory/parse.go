package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single record line read by ParseReader.
const maxLineBytes = 64 * 1024

// ParseLine parses one "px, py, pz @ vx, vy, vz" record.
func ParseLine(s string) (Trajectory, error) {
	pos, vel, ok := strings.Cut(s, "@")
	if !ok {
		return Trajectory{}, &ParseError{Text: s, Reason: "missing '@' separator"}
	}
	p, err := parseTriple(pos)
	if err != nil {
		return Trajectory{}, wrapParse(s, "invalid position", err)
	}
	v, err := parseTriple(vel)
	if err != nil {
		return Trajectory{}, wrapParse(s, "invalid velocity", err)
	}
	return New(p, v), nil
}

// ParseReader parses one record per line. Blank lines and lines starting
// with '#' are ignored. The first malformed line aborts parsing.
func ParseReader(r io.Reader) ([]Trajectory, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var out []Trajectory
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := ParseLine(line)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = lineNo
			}
			return nil, err
		}
		out = append(out, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trajectories: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyInput
	}
	return out, nil
}

func parseTriple(s string) (Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Vec3{}, fmt.Errorf("expected 3 comma-separated values, got %d", len(parts))
	}
	var vals [3]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return Vec3{}, err
		}
		vals[i] = v
	}
	return Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func wrapParse(text, reason string, err error) error {
	return &ParseError{Text: text, Reason: reason, Err: err}
}
