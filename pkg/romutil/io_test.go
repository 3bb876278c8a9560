/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package romutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryTraceSinkBuffersUntilFlush(t *testing.T) {
	sink := &MemoryTraceSink{}
	sink.Say("a")
	sink.Say("b")
	assert.Empty(t, sink.Lines)

	sink.Flush()
	assert.Equal(t, []string{"ab"}, sink.Lines)

	// A Flush with nothing buffered since the last one is a no-op.
	sink.Flush()
	assert.Equal(t, []string{"ab"}, sink.Lines)
}

func TestFixedFrameClock(t *testing.T) {
	clock := NewFixedFrameClock(0.1, 2)

	delta, ok := clock.NextDelta()
	assert.True(t, ok)
	assert.Equal(t, float32(0.1), delta)

	_, ok = clock.NextDelta()
	assert.True(t, ok)

	_, ok = clock.NextDelta()
	assert.False(t, ok)
}

func TestInteractiveFrameClock(t *testing.T) {
	clock := NewInteractiveFrameClock(strings.NewReader("0.5\n\nnotanumber\n"), 0.25)

	delta, ok := clock.NextDelta()
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), delta)

	delta, ok = clock.NextDelta()
	assert.True(t, ok)
	assert.Equal(t, float32(0.25), delta, "blank line falls back to defaultDelta")

	delta, ok = clock.NextDelta()
	assert.True(t, ok)
	assert.Equal(t, float32(0.25), delta, "unparseable line falls back to defaultDelta")

	_, ok = clock.NextDelta()
	assert.False(t, ok, "EOF stops the clock")
}
