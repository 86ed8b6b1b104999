package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pathlight/surveyflow/internal/survey"
)

// CycleWarning reports a potential loop in the branch-jump graph.
//
// Cycles are warnings, not errors: the navigator's traversal step cap
// guarantees termination, and an author may deliberately route
// respondents backward (e.g. "re-ask until confirmed"). But most jump
// cycles are mistakes, and respondents caught in one submit with an
// incomplete path.
type CycleWarning struct {
	Path    []string `json:"path"`    // cycle path: ["q1", "q3", "q1"]
	Message string   `json:"message"` // human-readable description
}

// AnalyzeCycles performs static cycle analysis over the question
// sequence plus branch jump actions, which together form a directed
// graph rather than a strict line.
//
// The algorithm:
//  1. Build question -> jump-target edges from every branch rule
//     (default-next fallthrough is not an edge; only explicit jumps
//     can move against the sequence order)
//  2. Find strongly connected components with Tarjan's algorithm
//  3. Report each SCC larger than one node, and each self-loop, as a
//     potential cycle
//
// A jump-free survey (or one whose jumps form a DAG) returns nil.
func AnalyzeCycles(s *survey.Survey) []CycleWarning {
	graph := buildJumpGraph(s)
	if len(graph) == 0 {
		return nil
	}

	var warnings []CycleWarning
	for _, scc := range tarjanSCC(graph) {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], graph)) {
			warnings = append(warnings, sccToWarning(scc, graph))
		}
	}
	return warnings
}

// jumpGraph maps question id -> jump target ids.
type jumpGraph map[string][]string

// buildJumpGraph collects the explicit jump edges. Dangling targets are
// skipped - Validate reports them separately and a jump nobody can land
// on cannot close a loop.
func buildJumpGraph(s *survey.Survey) jumpGraph {
	graph := make(jumpGraph)

	for _, q := range s.Questions {
		branch := q.Settings.Branch
		if branch == nil {
			continue
		}
		for _, rule := range branch.Rules {
			if rule.Action.Type != survey.ActionJump {
				continue
			}
			if s.IndexOf(rule.Action.TargetID) < 0 {
				continue
			}
			if graph[q.ID] == nil {
				graph[q.ID] = []string{}
			}
			graph[q.ID] = append(graph[q.ID], rule.Action.TargetID)
			// Target must exist as a node even without outgoing jumps.
			if graph[rule.Action.TargetID] == nil {
				graph[rule.Action.TargetID] = []string{}
			}
		}
	}

	return graph
}

func hasSelfLoop(node string, graph jumpGraph) bool {
	for _, neighbor := range graph[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components.
// Single-node SCCs without self-loops are NOT cycles.
func tarjanSCC(graph jumpGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	// Visit nodes in sorted order so warnings come out deterministically.
	ordered := make([]string, 0, len(graph))
	for id := range graph {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)
	for _, node := range ordered {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// sccToWarning renders an SCC as a traversable cycle path.
func sccToWarning(scc []string, graph jumpGraph) CycleWarning {
	if len(scc) == 1 {
		id := scc[0]
		return CycleWarning{
			Path:    []string{id, id},
			Message: fmt.Sprintf("question %q jumps to itself", id),
		}
	}

	path := reconstructCyclePath(scc, graph)
	return CycleWarning{
		Path:    path,
		Message: fmt.Sprintf("potential branch cycle: %s", strings.Join(path, " -> ")),
	}
}

// reconstructCyclePath follows jump edges within the SCC from its first
// member until the walk returns to the start.
func reconstructCyclePath(scc []string, graph jumpGraph) []string {
	sccSet := make(map[string]bool, len(scc))
	for _, node := range scc {
		sccSet[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range graph[current] {
			if sccSet[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}

		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}

	return path
}
