package diagnostics

// Bag is the ordered diagnostic collector every pass (symbol collector,
// resolver, type checker, definite assignment) appends to. Passes never
// stop each other: the driver runs every pass regardless of whether an
// earlier one produced diagnostics, so a single run surfaces the maximum
// useful set of errors (spec §7).
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add appends d to the bag in report order.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Extend appends every diagnostic in ds, preserving order.
func (b *Bag) Extend(ds []Diagnostic) { b.items = append(b.items, ds...) }

// Items returns the diagnostics collected so far, in report order.
func (b *Bag) Items() []Diagnostic { return b.items }

// Empty reports whether the bag has collected no diagnostics — spec §7's
// "a pass returns success iff its list is empty".
func (b *Bag) Empty() bool { return len(b.items) == 0 }

// Len returns the number of diagnostics collected.
func (b *Bag) Len() int { return len(b.items) }
