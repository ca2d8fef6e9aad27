package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPreview(t *testing.T) {
	var buf bytes.Buffer
	RenderPreview(&buf, sampleRecords(), 0)

	out := buf.String()
	assert.Contains(t, out, "VENDOR")
	assert.Contains(t, out, "N5K-C5596")
	assert.Contains(t, out, "PowerEdge R640")
	assert.Contains(t, out, "DL380 Gen9")
}

func TestRenderPreview_Truncates(t *testing.T) {
	var buf bytes.Buffer
	RenderPreview(&buf, sampleRecords(), 1)

	out := buf.String()
	assert.Contains(t, out, "N5K-C5596")
	assert.NotContains(t, out, "PowerEdge R640")
	assert.NotContains(t, out, "DL380 Gen9")
}

func TestRenderPreview_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderPreview(&buf, nil, 5)
	assert.Contains(t, buf.String(), "VENDOR")
}
