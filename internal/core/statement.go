package core

import "fmt"

type (
	// Statement is an ordered list of top-level lines over a calendar, such as
	// the DRE. Subtotal lines carry no authored values.
	Statement struct {
		ID       string     `json:"id"`
		Title    string     `json:"title"`
		Calendar Calendar   `json:"calendar"`
		Lines    []LineItem `json:"lines"`
	}

	// Row is one line of the flattened view of a tree.
	Row struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Kind        Kind   `json:"kind"`
		Sign        Sign   `json:"sign"`
		Depth       int    `json:"depth"`
		Values      Values `json:"values"`
		HasChildren bool   `json:"hasChildren"`
		Expanded    bool   `json:"expanded"`
	}
)

func (s Statement) Validate() error {
	if err := s.Calendar.Validate(); err != nil {
		return fmt.Errorf("statement %s: %w", s.ID, err)
	}
	if err := validateLines(s.Lines); err != nil {
		return fmt.Errorf("statement %s: %w", s.ID, err)
	}
	return nil
}

// Resolve returns the lines with every parent rolled up and every subtotal
// holding the cumulative sum of the non-subtotal lines above it.
func (s Statement) Resolve() []LineItem {
	out := make([]LineItem, len(s.Lines))
	running := Values{}
	for i, line := range s.Lines {
		if line.Kind == KindSubtotal {
			line.Values = running.Clone()
			out[i] = line
			continue
		}
		resolved := Resolve(line)
		running = running.Plus(resolved.Values)
		out[i] = resolved
	}
	return out
}

// Line returns the resolved top-level or nested line with id.
func (s Statement) Line(id string) (LineItem, bool) {
	for _, line := range s.Resolve() {
		if found, ok := line.Find(id); ok {
			return found, true
		}
	}
	return LineItem{}, false
}

// Flatten walks lines depth-first. Children are emitted only under expanded
// parents.
func Flatten(lines []LineItem, expanded ExpansionSet) []Row {
	var rows []Row
	for _, line := range lines {
		rows = flatten(rows, line, 0, func(id string) bool { return expanded.Contains(id) })
	}
	return rows
}

// FlattenAll is Flatten with every parent expanded.
func FlattenAll(lines []LineItem) []Row {
	var rows []Row
	for _, line := range lines {
		rows = flatten(rows, line, 0, func(string) bool { return true })
	}
	return rows
}

func flatten(rows []Row, n LineItem, depth int, open func(string) bool) []Row {
	expanded := !n.IsLeaf() && open(n.ID)
	values := n.Values
	if !n.IsLeaf() {
		values = RollUp(n)
	}
	rows = append(rows, Row{
		ID:          n.ID,
		Name:        n.Name,
		Kind:        n.Kind,
		Sign:        n.Sign,
		Depth:       depth,
		Values:      values,
		HasChildren: !n.IsLeaf(),
		Expanded:    expanded,
	})
	if !expanded {
		return rows
	}
	for _, c := range n.Children {
		rows = flatten(rows, c, depth+1, open)
	}
	return rows
}
