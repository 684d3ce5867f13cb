// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "warn"))
	log.Info().Msg("hidden")
	log.Warn().Str("file", "output.txt").Int("line", 6).Msg("skipping record")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "skipping record")
	assert.Contains(t, out, "file=output.txt")
	assert.Contains(t, out, "line=6")

	buf.Reset()
	require.NoError(t, Setup(&buf, ""))
	log.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.Error(t, Setup(&buf, "loud"))
}
