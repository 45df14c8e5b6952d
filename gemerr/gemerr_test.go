// SPDX-License-Identifier: MIT

package gemerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/stretchr/testify/require"
)

// TestNew_MatchesCategoryOnly checks that a package sentinel matches itself and its category.
func TestNew_MatchesCategoryOnly(t *testing.T) {
	errA := gemerr.New(gemerr.ErrStructural, "pkg: a")
	errB := gemerr.New(gemerr.ErrStructural, "pkg: a")

	require.ErrorIs(t, errA, gemerr.ErrStructural)
	require.ErrorIs(t, errA, errA)
	require.NotErrorIs(t, errA, errB) // distinct values, same message
	require.NotErrorIs(t, errA, gemerr.ErrConfiguration)
	require.Equal(t, "pkg: a", errA.Error())
}

// TestCategory_ThroughWrapping verifies classification survives fmt.Errorf chains.
func TestCategory_ThroughWrapping(t *testing.T) {
	base := gemerr.New(gemerr.ErrConvergence, "ranking: not converged")
	wrapped := fmt.Errorf("condition baseline: %w", base)
	wrapped = gemerr.Wrapf(wrapped, "run %d", 3)

	require.Equal(t, gemerr.ErrConvergence, gemerr.Category(wrapped))
	require.Equal(t, "run 3: condition baseline: ranking: not converged", wrapped.Error())
	require.Nil(t, gemerr.Category(errors.New("plain")))
}
