/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package romutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	assert.Equal(t, int32(5), Abs(5))
	assert.Equal(t, int32(5), Abs(-5))
	assert.Equal(t, int32(0), Abs(0))
}

func TestClampf(t *testing.T) {
	assert.Equal(t, float32(0), Clampf(-5, 0, 10))
	assert.Equal(t, float32(10), Clampf(15, 0, 10))
	assert.Equal(t, float32(5), Clampf(5, 0, 10))
}
