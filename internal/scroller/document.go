package scroller

// Block is one deck panel in a line document. It is the panel handle the
// deck registry works with.
type Block struct {
	id     string
	Title  string
	Lines  []string
	top    int
	height int
}

// NewBlock builds a block of content lines. An empty id lets the registry
// synthesize one.
func NewBlock(id, title string, lines []string) *Block {
	return &Block{id: id, Title: title, Lines: lines, height: len(lines) + 1}
}

func (b *Block) ID() string      { return b.id }
func (b *Block) SetID(id string) { b.id = id }
func (b *Block) Top() int        { return b.top }
func (b *Block) Height() int     { return b.height }
func (b *Block) Bottom() int     { return b.top + b.height }

// Line returns row i of the block as laid out. Row 0 is padding: deck
// targets land one row below the top edge.
func (b *Block) Line(i int) string {
	i--
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

// Document is the ordered stack of blocks being scrolled.
type Document struct {
	blocks []*Block
}

func NewDocument(blocks ...*Block) *Document {
	d := &Document{blocks: blocks}
	d.layout()
	return d
}

func (d *Document) Blocks() []*Block { return d.blocks }

// Height is the total line count of the document.
func (d *Document) Height() int {
	if len(d.blocks) == 0 {
		return 0
	}
	return d.blocks[len(d.blocks)-1].Bottom()
}

// Stretch sizes every block to at least minHeight rows and recomputes the
// offsets.
func (d *Document) Stretch(minHeight int) {
	for _, b := range d.blocks {
		b.height = max(len(b.Lines)+1, minHeight)
	}
	d.layout()
}

// BlockAt returns the block covering document row y.
func (d *Document) BlockAt(y int) (*Block, bool) {
	for _, b := range d.blocks {
		if y >= b.top && y < b.Bottom() {
			return b, true
		}
	}
	return nil, false
}

// Row returns document row y.
func (d *Document) Row(y int) string {
	b, ok := d.BlockAt(y)
	if !ok {
		return ""
	}
	return b.Line(y - b.top)
}

func (d *Document) layout() {
	y := 0
	for _, b := range d.blocks {
		b.top = y
		y += b.height
	}
}
