package pipeline

import (
	"fmt"
	"sort"
	"strings"

	gographviz "github.com/awalterschulze/gographviz"
)

// DOT renders the compiled chain reachable from this pipeline's entry as
// a Graphviz digraph. Handler nodes are boxes labelled with the handler's
// function name; branch nodes are diamonds with "yes" and "no" edges that
// reconverge to the same continuation; the shared terminal is a double
// circle. The output is stable for a given compiled pipeline.
func (p Pipeline) DOT(name string) (string, error) {
	if name == "" {
		name = "pipeline"
	}
	g := gographviz.NewGraph()
	if err := g.SetName(name); err != nil {
		return "", fmt.Errorf("dot graph name: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return "", fmt.Errorf("dot graph dir: %w", err)
	}

	if err := g.AddNode(name, "done", map[string]string{"shape": "doublecircle"}); err != nil {
		return "", fmt.Errorf("dot terminal node: %w", err)
	}
	if p.Empty() {
		return g.String(), nil
	}

	type edge struct {
		from, to string
		label    string
	}
	var edges []edge

	// Walk every node reachable from the entry. Reconverging branches
	// share continuation indices, so the visited set keeps the walk
	// linear in compiled size.
	visited := make(map[int]bool)
	queue := []int{p.head}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if idx == terminal || visited[idx] {
			continue
		}
		visited[idx] = true

		n := p.prog.nodes[idx]
		id := dotNodeID(idx)
		if n.handler != nil {
			attrs := map[string]string{
				"shape": "box",
				"label": dotQuote(n.name),
			}
			if err := g.AddNode(name, id, attrs); err != nil {
				return "", fmt.Errorf("dot node %s: %w", id, err)
			}
			edges = append(edges, edge{from: id, to: dotNodeID(n.next)})
			queue = append(queue, n.next)
		} else {
			attrs := map[string]string{
				"shape": "diamond",
				"label": dotQuote("when?"),
			}
			if err := g.AddNode(name, id, attrs); err != nil {
				return "", fmt.Errorf("dot node %s: %w", id, err)
			}
			edges = append(edges, edge{from: id, to: dotNodeID(n.taken), label: "yes"})
			edges = append(edges, edge{from: id, to: dotNodeID(n.next), label: "no"})
			queue = append(queue, n.taken, n.next)
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].label > edges[j].label // "yes" before "no"
	})
	for _, e := range edges {
		var attrs map[string]string
		if e.label != "" {
			attrs = map[string]string{"label": dotQuote(e.label)}
		}
		if err := g.AddEdge(e.from, e.to, true, attrs); err != nil {
			return "", fmt.Errorf("dot edge %s->%s: %w", e.from, e.to, err)
		}
	}

	return g.String(), nil
}

// dotNodeID maps a compiled node index to a stable DOT identifier.
func dotNodeID(idx int) string {
	if idx == terminal {
		return "done"
	}
	return fmt.Sprintf("n%d", idx)
}

// dotQuote wraps a label in double quotes, escaping as needed.
// gographviz passes attribute values through verbatim, so values with
// spaces or punctuation must arrive pre-quoted.
func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
