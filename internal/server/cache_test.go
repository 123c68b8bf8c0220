package server

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderKey(t *testing.T) {
	source := []byte(`{"personalInfo": {"fullName": "Jane Doe"}}`)

	base := renderKey(source, types.FormatStandard, rendering.KindPDF)
	assert.Len(t, base, 64)

	reformatted := []byte("{\n  \"personalInfo\": {\n    \"fullName\": \"Jane Doe\"\n  }\n}")
	assert.Equal(t, base, renderKey(reformatted, types.FormatStandard, rendering.KindPDF))

	otherKind := renderKey(source, types.FormatStandard, rendering.KindDOCX)
	otherFormat := renderKey(source, types.FormatCompact, rendering.KindPDF)
	otherDoc := renderKey([]byte(`{"personalInfo": {"fullName": "Jane Doe"}, "summary": "changed"}`), types.FormatStandard, rendering.KindPDF)

	assert.NotEqual(t, base, otherKind)
	assert.NotEqual(t, base, otherFormat)
	assert.NotEqual(t, base, otherDoc)
}

func TestRenderCache_GetOrRender(t *testing.T) {
	cache, err := newRenderCache(2, observability.MustNewMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)

	calls := 0
	render := func() (*rendering.Artifact, error) {
		calls++
		return &rendering.Artifact{Kind: rendering.KindText, Data: []byte("resume")}, nil
	}

	a, hit, err := cache.getOrRender("k1", render)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "resume", string(a.Data))

	_, hit, err = cache.getOrRender("k1", render)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)

	// least recently used entries are evicted
	_, _, _ = cache.getOrRender("k2", render)
	_, _, _ = cache.getOrRender("k3", render)
	_, hit, _ = cache.getOrRender("k1", render)
	assert.False(t, hit)
}

func TestRenderCache_ErrorsNotCached(t *testing.T) {
	cache, err := newRenderCache(4, nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, _, err = cache.getOrRender("k", func() (*rendering.Artifact, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, hit, err := cache.getOrRender("k", func() (*rendering.Artifact, error) {
		return &rendering.Artifact{Kind: rendering.KindPDF}, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRenderCache_Nil(t *testing.T) {
	var cache *renderCache
	a, hit, err := cache.getOrRender("k", func() (*rendering.Artifact, error) {
		return &rendering.Artifact{Kind: rendering.KindHTML}, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, rendering.KindHTML, a.Kind)
}

func TestNewRenderCache_InvalidSize(t *testing.T) {
	_, err := newRenderCache(0, nil)
	assert.Error(t, err)
}
