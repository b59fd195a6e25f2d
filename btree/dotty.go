package btree

import (
	"fmt"
	"io"
	"strings"
)

// ToDot outputs the structure of a tree in Graphviz DOT format (for debugging
// purposes). label renders leaf values; it may be nil.
func ToDot[L Leaf[N], N Info[N]](w io.Writer, root Node[L, N], label func(L) string) error {
	var nodelist, edgelist strings.Builder
	id := 0
	var walk func(n Node[L, N]) int
	walk = func(n Node[L, N]) int {
		id++
		me := id
		if n.IsLeaf() {
			text := fmt.Sprintf("%v", n.info)
			if label != nil {
				text = label(n.leaf)
			}
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", me, dotEscape(text), nodeDotStyles(true))
			return me
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"h=%d\\n%s\" %s];\n", me, n.height,
			dotEscape(fmt.Sprintf("%v", n.info)), nodeDotStyles(false))
		for _, child := range n.childList() {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", me, walk(child))
		}
		return me
	}
	walk(root)
	_, err := io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"+
		nodelist.String()+edgelist.String()+"}\n")
	if err != nil {
		tracer().Errorf("btree DOT: %s", err.Error())
	}
	return err
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return strings.ReplaceAll(s, "\n", "\\n")
}
