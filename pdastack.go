package automata

// emptyStack is the id of the empty stack in every stackPool.
const emptyStack = 0

// stackPool interns pushdown stacks as persistent linked cells. Each distinct stack content gets
// exactly one id, so a configuration can carry its stack as an int and two configurations with
// equal stacks compare equal without walking them. A pool belongs to one search call.
type stackPool struct {
	cells   []stackCell
	heights []int
	ids     map[stackCell]int
}

type stackCell struct {
	top   rune
	below int
}

func newStackPool() *stackPool {
	return &stackPool{
		cells:   []stackCell{{below: -1}},
		heights: []int{0},
		ids:     make(map[stackCell]int),
	}
}

// push returns the id of the stack with r on top of below.
func (p *stackPool) push(below int, r rune) int {
	cell := stackCell{top: r, below: below}
	if id, ok := p.ids[cell]; ok {
		return id
	}
	id := len(p.cells)
	p.cells = append(p.cells, cell)
	p.heights = append(p.heights, p.heights[below]+1)
	p.ids[cell] = id
	return id
}

// top returns the top symbol of a non-empty stack.
func (p *stackPool) top(id int) rune {
	return p.cells[id].top
}

// replace pops the top of a non-empty stack and pushes push so that push[0] ends on top.
func (p *stackPool) replace(id int, push []rune) int {
	rest := p.cells[id].below
	for i := len(push) - 1; i >= 0; i-- {
		rest = p.push(rest, push[i])
	}
	return rest
}

func (p *stackPool) height(id int) int {
	return p.heights[id]
}

// contents returns the stack top first.
func (p *stackPool) contents(id int) string {
	rs := make([]rune, 0, p.heights[id])
	for ; id != emptyStack; id = p.cells[id].below {
		rs = append(rs, p.cells[id].top)
	}
	return string(rs)
}
