package check

import (
	"fmt"
	"sort"

	"github.com/ndrsllwngr/goscript/sem"
)

// initNode is one step of package initialization: a variable declaration with
// an initializer, holding every variable it initializes.
type initNode struct {
	decl sem.DeclKey
	objs []sem.ObjKey

	succs  []int
	indeg  int
	placed bool
}

// initOrder computes the order in which package level variables must be
// initialized and stores it in the recorded results.  Ready declarations are
// emitted earliest first; ties are broken by source order.  A dependency
// cycle is reported once and its members are placed in source order so that
// the computed order stays total.
func (c *Checker) initOrder() {
	nodes, nodeOf := c.initNodes()
	if len(nodes) == 0 {
		return
	}

	// Edges run from a declaration to the declarations depending on it.  A
	// declaration depending on its own variables is a cycle on its own,
	// typically closed through a function body; it gets no edge so it still
	// drains in source order.
	for i, n := range nodes {
		seen := make(map[int]bool)
		for dep := range c.varDepsOf(n.decl) {
			j, ok := nodeOf[c.objMap[dep]]
			if !ok || seen[j] {
				continue
			}

			seen[j] = true
			if j == i {
				c.reportInitCycle([]sem.ObjKey{n.objs[0]})
				continue
			}

			nodes[j].succs = append(nodes[j].succs, i)
			n.indeg++
		}
	}

	remaining := len(nodes)

	for remaining > 0 {
		next := -1
		for i, n := range nodes {
			if n.placed || n.indeg != 0 {
				continue
			}

			if next < 0 || c.nodeBefore(nodes[i], nodes[next]) {
				next = i
			}
		}

		if next < 0 {
			// Every remaining declaration waits on another: a cycle.  Break
			// it at its earliest member; the rest then drain in order.
			var roots []sem.ObjKey
			for _, n := range nodes {
				if !n.placed {
					roots = append(roots, n.objs[0])
				}
			}

			c.reportInitCycle(roots)

			for i, n := range nodes {
				if n.placed {
					continue
				}

				if next < 0 || c.nodeBefore(nodes[i], nodes[next]) {
					next = i
				}
			}

			nodes[next].indeg = 0
		}

		n := nodes[next]
		n.placed = true
		remaining--

		for _, s := range n.succs {
			if nodes[s].indeg > 0 {
				nodes[s].indeg--
			}
		}

		c.info.InitOrder = append(c.info.InitOrder, &Initializer{
			Lhs: n.objs,
			Rhs: c.arena.Decl(n.decl).Init,
		})
	}
}

// initNodes collects the variable declarations carrying initializers, with
// their variables in source order.
func (c *Checker) initNodes() ([]*initNode, map[sem.DeclKey]int) {
	objs := make([]sem.ObjKey, 0, len(c.objMap))
	for obj := range c.objMap {
		objs = append(objs, obj)
	}

	sort.Slice(objs, func(i, j int) bool {
		di := c.arena.Decl(c.objMap[objs[i]])
		dj := c.arena.Decl(c.objMap[objs[j]])
		if di.File != dj.File {
			return di.File < dj.File
		}

		return c.arena.Obj(objs[i]).Pos.Before(c.arena.Obj(objs[j]).Pos)
	})

	var nodes []*initNode
	nodeOf := make(map[sem.DeclKey]int)

	for _, obj := range objs {
		if c.arena.Obj(obj).Kind != sem.VarObj {
			continue
		}

		declKey := c.objMap[obj]
		if c.arena.Decl(declKey).Init == nil {
			continue
		}

		i, ok := nodeOf[declKey]
		if !ok {
			i = len(nodes)
			nodeOf[declKey] = i
			nodes = append(nodes, &initNode{decl: declKey})
		}

		nodes[i].objs = append(nodes[i].objs, obj)
	}

	return nodes, nodeOf
}

// nodeBefore orders nodes by the source position of their first variable.
func (c *Checker) nodeBefore(a, b *initNode) bool {
	da := c.arena.Decl(a.decl)
	db := c.arena.Decl(b.decl)
	if da.File != db.File {
		return da.File < db.File
	}

	return c.arena.Obj(a.objs[0]).Pos.Before(c.arena.Obj(b.objs[0]).Pos)
}

// varDepsOf returns the set of package level variables a declaration depends
// on, directly or through the bodies and initializers of other package level
// declarations.
func (c *Checker) varDepsOf(declKey sem.DeclKey) map[sem.ObjKey]bool {
	deps := make(map[sem.ObjKey]bool)
	seen := map[sem.DeclKey]bool{declKey: true}

	stack := c.arena.Decl(declKey).Deps()
	for len(stack) > 0 {
		obj := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dk, ok := c.objMap[obj]
		if !ok {
			continue
		}

		if c.arena.Obj(obj).Kind == sem.VarObj {
			deps[obj] = true
			continue
		}

		if seen[dk] {
			continue
		}

		seen[dk] = true
		stack = append(stack, c.arena.Decl(dk).Deps()...)
	}

	return deps
}

// -----------------------------------------------------------------------------

// reportInitCycle finds one cycle reachable from the given objects and reports
// it with a single diagnostic, unless a member was already diagnosed during
// declaration checking.
func (c *Checker) reportInitCycle(roots []sem.ObjKey) {
	cycle := c.findObjCycle(roots)
	if cycle == nil {
		return
	}

	// Rotate the cycle so it starts at its earliest member.
	first := 0
	for i := range cycle {
		oi, of := c.arena.Obj(cycle[i]), c.arena.Obj(cycle[first])
		if c.arena.Decl(c.objMap[cycle[i]]).File < c.arena.Decl(c.objMap[cycle[first]]).File ||
			(c.arena.Decl(c.objMap[cycle[i]]).File == c.arena.Decl(c.objMap[cycle[first]]).File && oi.Pos.Before(of.Pos)) {
			first = i
		}
	}

	for _, obj := range cycle {
		if c.arena.Obj(obj).Type == c.invalid() {
			return
		}
	}

	start := c.arena.Obj(cycle[first])
	msg := fmt.Sprintf("initialization cycle for %s", start.Name)
	for i := range cycle {
		cur := cycle[(first+i)%len(cycle)]
		next := cycle[(first+i+1)%len(cycle)]
		msg += fmt.Sprintf("\n\t%s refers to %s", c.arena.Obj(cur).Name, c.arena.Obj(next).Name)
	}

	c.octx.fileIdx = c.arena.Decl(c.objMap[cycle[first]]).File
	c.errorf(start.Pos, "%s", msg)
}

// findObjCycle searches the raw dependency graph for a cycle reachable from
// any of the given objects.  The returned cycle may pass through functions
// and constants, not only variables.
func (c *Checker) findObjCycle(roots []sem.ObjKey) []sem.ObjKey {
	const (
		unvisited = 0
		onPath    = 1
		done      = 2
	)

	state := make(map[sem.ObjKey]int)
	var path []sem.ObjKey

	var visit func(obj sem.ObjKey) []sem.ObjKey
	visit = func(obj sem.ObjKey) []sem.ObjKey {
		declKey, ok := c.objMap[obj]
		if !ok {
			return nil
		}

		switch state[obj] {
		case onPath:
			for i, o := range path {
				if o == obj {
					return append([]sem.ObjKey(nil), path[i:]...)
				}
			}

			return nil
		case done:
			return nil
		}

		state[obj] = onPath
		path = append(path, obj)

		deps := c.arena.Decl(declKey).Deps()
		sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
		for _, dep := range deps {
			if cycle := visit(dep); cycle != nil {
				return cycle
			}
		}

		path = path[:len(path)-1]
		state[obj] = done
		return nil
	}

	for _, root := range roots {
		if cycle := visit(root); cycle != nil {
			return cycle
		}
	}

	return nil
}
