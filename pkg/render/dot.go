package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// escape quotes a value for use inside a double-quoted DOT id.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// WriteDOT serializes a descriptor as a Graphviz digraph. The output
// losslessly encodes every node with its label and community fill color and
// every edge with its weight label.
func WriteDOT(w io.Writer, desc *Descriptor) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, "digraph communities {"); err != nil {
		return err
	}

	for _, n := range desc.Nodes {
		_, err := fmt.Fprintf(bw, "    \"%s\" [label=\"%s\", style=filled, fillcolor=\"%s\"];\n",
			escape(n.Identifier), escape(n.Label), n.FillColor)
		if err != nil {
			return err
		}
	}

	for _, e := range desc.Edges {
		_, err := fmt.Fprintf(bw, "    \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escape(e.Source), escape(e.Target), escape(e.Label))
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(bw, "}"); err != nil {
		return err
	}
	return bw.Flush()
}
