package state

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

/*
ParseGraph reads an explicit topology over the nodes 0..n-1. Each line is either a group
definition or a pairing:

	core = 0, 1, 2     // defines the group "core"
	edge = 3, core     // groups may reference other groups
	core, core         // full mesh inside core
	core, 4            // 4 is connected to every member of core
	5, 6, 7            // 5, 6 and 7 are pairwise connected

Members of one group are only interconnected when the group is paired with itself.
Empty lines and text after "//" are ignored.
*/
func ParseGraph(graph []string, n int) ([]Edge, error) {
	groups := make(map[string][]string)
	pairings := make([][]string, 0)

	isNode := func(sym string) bool {
		id, err := strconv.Atoi(sym)
		return err == nil && id >= 0 && id < n
	}

	// collect group names first so definitions may appear in any order
	for _, line := range graph {
		line = cleanGraphLine(line)
		if !strings.Contains(line, "=") {
			continue
		}
		name, _, _ := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid graph: %s. group name must not be empty", line)
		}
		if _, err := strconv.Atoi(name); err == nil {
			return nil, fmt.Errorf("group name must not be a node id: %s", name)
		}
		if _, ok := groups[name]; ok {
			return nil, fmt.Errorf("duplicate group name: %s", name)
		}
		groups[name] = nil
	}

	isSymbol := func(sym string) bool {
		_, ok := groups[sym]
		return ok || isNode(sym)
	}

	for _, line := range graph {
		line = cleanGraphLine(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "=") {
			name, members, _ := strings.Cut(line, "=")
			if strings.Contains(members, "=") {
				return nil, fmt.Errorf("invalid graph: %s. group definition must contain one '='", line)
			}
			lst, err := parseSymbolList(members, isSymbol)
			if err != nil {
				return nil, err
			}
			groups[strings.TrimSpace(name)] = lst
			continue
		}
		lst, err := parseSymbolList(line, isSymbol)
		if err != nil {
			return nil, err
		}
		if len(lst) < 2 {
			return nil, fmt.Errorf("invalid pairing, %v", lst)
		}
		pairings = append(pairings, lst)
	}

	expanded := make(map[string][]NodeId)
	var expand func(sym string, path []string) ([]NodeId, error)
	expand = func(sym string, path []string) ([]NodeId, error) {
		if isNode(sym) {
			id, _ := strconv.Atoi(sym)
			return []NodeId{NodeId(id)}, nil
		}
		if ids, ok := expanded[sym]; ok {
			return ids, nil
		}
		if slices.Contains(path, sym) {
			cycle := slices.Clone(path[slices.Index(path, sym):])
			slices.Sort(cycle)
			return nil, fmt.Errorf("cycle detected in graph: %v", cycle)
		}
		ids := make([]NodeId, 0)
		for _, member := range groups[sym] {
			sub, err := expand(member, append(path, sym))
			if err != nil {
				return nil, err
			}
			ids = append(ids, sub...)
		}
		slices.Sort(ids)
		ids = slices.Compact(ids)
		expanded[sym] = ids
		return ids, nil
	}

	edges := make([]Edge, 0)
	for _, lst := range pairings {
		for i := range lst {
			for j := i + 1; j < len(lst); j++ {
				xs, err := expand(lst[i], nil)
				if err != nil {
					return nil, err
				}
				ys, err := expand(lst[j], nil)
				if err != nil {
					return nil, err
				}
				for _, x := range xs {
					for _, y := range ys {
						if x != y {
							edges = append(edges, MakeSortedPair(x, y))
						}
					}
				}
			}
		}
	}
	// groups that are defined but never paired may still hide a cycle
	for name := range groups {
		if _, err := expand(name, nil); err != nil {
			return nil, err
		}
	}
	SortPairs(edges)
	return slices.Compact(edges), nil
}

func cleanGraphLine(line string) string {
	if idx := strings.Index(line, "//"); idx != -1 {
		line = line[:idx]
	}
	return strings.ToLower(strings.TrimSpace(line))
}

func parseSymbolList(s string, valid func(string) bool) ([]string, error) {
	line := make([]string, 0)
	for _, sym := range strings.Split(strings.TrimSpace(s), ",") {
		x := strings.TrimSpace(sym)
		if x == "" {
			continue
		}
		if !valid(x) {
			return nil, fmt.Errorf(`%s is not a valid node/group`, x)
		}
		line = append(line, x)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf(`node/group list must not be empty`)
	}
	return line, nil
}
