package summarize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextShortInputUnchanged(t *testing.T) {
	in := "One sentence. Two sentences."
	assert.Equal(t, in, Text(in, 8))
}

func TestTextBoundsSentenceCount(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "Sentence number %d talks about golang services. ", i)
	}
	out := Text(b.String(), 5)

	count := strings.Count(out, ".")
	assert.LessOrEqual(t, count, 5)
	assert.NotEmpty(t, out)
}

func TestTextPreservesOriginalOrder(t *testing.T) {
	in := "Alpha builds golang golang golang systems. Filler filler. Zeta ships golang golang golang tools."
	out := Text(in, 2)

	a := strings.Index(out, "Alpha")
	z := strings.Index(out, "Zeta")
	assert.GreaterOrEqual(t, a, 0)
	assert.Greater(t, z, a)
}

func TestTextEdgeCases(t *testing.T) {
	assert.Equal(t, "", Text("", 8))
	assert.Equal(t, "", Text("anything", 0))
	assert.NotPanics(t, func() { Text("!!! ??? ...", 3) })
}
