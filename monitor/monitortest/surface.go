package monitortest

// OpKind is a drawing primitive.
type OpKind uint8

const (
	OpBox OpKind = iota
	OpFrame
)

// Op is one recorded draw call.
type Op struct {
	Kind       OpKind
	X, Y, W, H int16
}

// Box and Frame build expected ops.
func Box(x, y, w, h int16) Op   { return Op{Kind: OpBox, X: x, Y: y, W: w, H: h} }
func Frame(x, y, w, h int16) Op { return Op{Kind: OpFrame, X: x, Y: y, W: w, H: h} }

// Commit is one frame that reached the screen.
type Commit struct {
	// Clear is set for Clear calls; Pages is empty then.
	Clear bool
	// Pages holds the draw calls of each page pass.
	Pages [][]Op
}

// Ops returns the draw calls of the first page pass.
func (c Commit) Ops() []Op {
	if len(c.Pages) == 0 {
		return nil
	}
	return c.Pages[0]
}

// Surface records paged drawing. PageCount passes make a frame.
type Surface struct {
	W, H      int16
	PageCount int

	Commits []Commit
	// FirstPages counts FirstPage calls.
	FirstPages int

	page    int
	drawing bool
	pages   [][]Op
	// Stray counts draw calls outside a FirstPage/NextPage cycle.
	Stray int
}

// NewSurface returns a 128x32 surface drawn in pages passes.
func NewSurface(pages int) *Surface {
	if pages <= 0 {
		pages = 1
	}
	return &Surface{W: 128, H: 32, PageCount: pages}
}

func (s *Surface) Size() (w, h int16) { return s.W, s.H }

func (s *Surface) FirstPage() {
	s.FirstPages++
	s.page = 0
	s.drawing = true
	s.pages = [][]Op{nil}
}

func (s *Surface) NextPage() bool {
	if !s.drawing {
		return false
	}
	s.page++
	if s.page >= s.PageCount {
		s.Commits = append(s.Commits, Commit{Pages: s.pages})
		s.drawing = false
		s.pages = nil
		return false
	}
	s.pages = append(s.pages, nil)
	return true
}

func (s *Surface) DrawBox(x, y, w, h int16)   { s.record(Box(x, y, w, h)) }
func (s *Surface) DrawFrame(x, y, w, h int16) { s.record(Frame(x, y, w, h)) }

func (s *Surface) record(op Op) {
	if !s.drawing {
		s.Stray++
		return
	}
	s.pages[s.page] = append(s.pages[s.page], op)
}

func (s *Surface) Clear() error {
	s.Commits = append(s.Commits, Commit{Clear: true})
	return nil
}

// Last returns the most recent commit.
func (s *Surface) Last() Commit {
	if len(s.Commits) == 0 {
		return Commit{}
	}
	return s.Commits[len(s.Commits)-1]
}

// Drawing reports whether a frame is open.
func (s *Surface) Drawing() bool { return s.drawing }
