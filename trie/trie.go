// Package trie is a simple prefix tree over upper-cased words. It is built
// once and is safe for concurrent reads afterwards.
package trie

import (
	"sort"
	"strings"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/text/unicode/norm"
)

// Node is a state in the tree. A Terminal node ends a word.
type Node struct {
	// Arcs are kept sorted by letter.
	Arcs     []*Arc
	Terminal bool
}

// Arc leads from a node to the node for the next letter.
type Arc struct {
	Letter      rune
	Destination *Node
}

// Trie holds the root node plus a few counters gathered while inserting.
// Nodes themselves carry no lengths or counts.
type Trie struct {
	Root        *Node
	AllocStates uint32
	AllocArcs   uint32

	numWords   int
	maxWordLen int
}

func New() *Trie {
	return &Trie{Root: &Node{}, AllocStates: 1}
}

// Normalize puts a word in the form that is stored in the tree.
func Normalize(word string) string {
	return strings.ToUpper(norm.NFC.String(word))
}

// Child returns the node reached from n by letter, or nil.
func (n *Node) Child(letter rune) *Node {
	i := sort.Search(len(n.Arcs), func(i int) bool { return n.Arcs[i].Letter >= letter })
	if i < len(n.Arcs) && n.Arcs[i].Letter == letter {
		return n.Arcs[i].Destination
	}
	return nil
}

// addArc returns the node for letter, creating the arc if needed.
func (t *Trie) addArc(n *Node, letter rune) *Node {
	i := sort.Search(len(n.Arcs), func(i int) bool { return n.Arcs[i].Letter >= letter })
	if i < len(n.Arcs) && n.Arcs[i].Letter == letter {
		return n.Arcs[i].Destination
	}
	next := &Node{}
	t.AllocStates++
	t.AllocArcs++
	n.Arcs = append(n.Arcs, nil)
	copy(n.Arcs[i+1:], n.Arcs[i:])
	n.Arcs[i] = &Arc{Letter: letter, Destination: next}
	return next
}

// Insert adds a word. Inserting a word twice is the same as inserting it
// once. The empty word is ignored.
func (t *Trie) Insert(word string) {
	word = Normalize(word)
	if word == "" {
		return
	}
	node := t.Root
	for _, c := range word {
		node = t.addArc(node, c)
	}
	if node.Terminal {
		return
	}
	node.Terminal = true
	t.numWords++
	if l := utf8.RuneCountInString(word); l > t.maxWordLen {
		t.maxWordLen = l
	}
}

// Contains returns true if the word (in any case) was inserted.
func (t *Trie) Contains(word string) bool {
	if word == "" {
		return false
	}
	node := t.Root
	for _, c := range Normalize(word) {
		node = node.Child(c)
		if node == nil {
			return false
		}
	}
	return node.Terminal
}

// NumWords is the number of distinct words inserted.
func (t *Trie) NumWords() int {
	return t.numWords
}

// MaxWordLength is the length in runes of the longest word.
func (t *Trie) MaxWordLength() int {
	return t.maxWordLen
}

// EstimatedBytes is a rough count of the memory held by the tree.
func (t *Trie) EstimatedBytes() uint64 {
	nodeSize := uint64(unsafe.Sizeof(Node{}))
	// an Arc plus the pointer to it in the parent's Arcs slice
	arcSize := uint64(unsafe.Sizeof(Arc{}) + unsafe.Sizeof(&Arc{}))
	return uint64(t.AllocStates)*nodeSize + uint64(t.AllocArcs)*arcSize
}

type nodeTraversalFn func(word []rune, n *Node)

// Walk calls fn for every node in depth-first, alphabetical order. The
// word slice is reused between calls.
func (t *Trie) Walk(fn nodeTraversalFn) {
	walk(t.Root, make([]rune, 0, t.maxWordLen), fn)
}

func walk(n *Node, prefix []rune, fn nodeTraversalFn) {
	fn(prefix, n)
	for _, arc := range n.Arcs {
		walk(arc.Destination, append(prefix, arc.Letter), fn)
	}
}

// Words returns every word in alphabetical order.
func (t *Trie) Words() []string {
	words := make([]string, 0, t.numWords)
	t.Walk(func(word []rune, n *Node) {
		if n.Terminal {
			words = append(words, string(word))
		}
	})
	return words
}
