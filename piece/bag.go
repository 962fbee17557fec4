package piece

// Shuffler permutes n elements through swap. *rand.Rand from math/rand and
// math/rand/v2 both satisfy it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Bag is the 7-bag randomizer: a queue of shapes that is refilled with a freshly
// shuffled full set whenever it runs empty, so every 7 consecutive draws from a
// refill boundary contain each shape exactly once.
//
// Bag is a value; Draw returns the successor state and leaves the receiver intact.
type Bag struct {
	queue    []Shape
	shuffler Shuffler
}

// NewBag returns an empty bag. The first draw fills it.
func NewBag(shuffler Shuffler) Bag {
	return Bag{shuffler: shuffler}
}

// Draw pops the head shape. The returned bag is refilled when the pop empties it.
func (b Bag) Draw() (Shape, Bag) {
	queue := b.queue
	if len(queue) == 0 {
		queue = b.fresh()
	}
	shape := queue[0]
	rest := make([]Shape, len(queue)-1, len(Shapes))
	copy(rest, queue[1:])
	if len(rest) == 0 {
		rest = b.fresh()
	}
	return shape, Bag{queue: rest, shuffler: b.shuffler}
}

// DrawAt pops the head shape as a spawn-rotation piece anchored at (x, y).
func (b Bag) DrawAt(x, y int) (Piece, Bag) {
	shape, next := b.Draw()
	return New(shape, x, y), next
}

// Queue returns a copy of the shapes still waiting in the bag, head first.
func (b Bag) Queue() []Shape {
	out := make([]Shape, len(b.queue))
	copy(out, b.queue)
	return out
}

// Len reports how many shapes remain before the next refill.
func (b Bag) Len() int {
	return len(b.queue)
}

func (b Bag) fresh() []Shape {
	set := make([]Shape, len(Shapes))
	copy(set, Shapes[:])
	if b.shuffler != nil {
		b.shuffler.Shuffle(len(set), func(i, j int) {
			set[i], set[j] = set[j], set[i]
		})
	}
	return set
}
