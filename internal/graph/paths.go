package graph

// SimplePaths enumerates simple paths from src to dst with at most cutoff
// edges, depth-first in neighbour order. visit is called for each path found
// and may return false to stop the walk. The slice passed to visit is reused
// between calls.
func (g *Graph) SimplePaths(src, dst string, cutoff int, visit func(path []string) bool) {
	if cutoff < 1 || src == dst || !g.HasNode(src) || !g.HasNode(dst) {
		return
	}
	path := []string{src}
	onPath := map[string]bool{src: true}

	var walk func(node string) bool
	walk = func(node string) bool {
		for _, next := range g.Neighbors(node) {
			if onPath[next] {
				continue
			}
			if next == dst {
				if !visit(append(path, next)) {
					return false
				}
				continue
			}
			if len(path) >= cutoff {
				continue
			}
			path = append(path, next)
			onPath[next] = true
			cont := walk(next)
			onPath[next] = false
			path = path[:len(path)-1]
			if !cont {
				return false
			}
		}
		return true
	}
	walk(src)
}

// FirstPath returns the first simple path found within cutoff, or nil.
func (g *Graph) FirstPath(src, dst string, cutoff int) []string {
	var found []string
	g.SimplePaths(src, dst, cutoff, func(p []string) bool {
		found = append([]string(nil), p...)
		return false
	})
	return found
}
