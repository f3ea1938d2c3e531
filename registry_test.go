// SPDX-License-Identifier: Apache-2.0

package tmdatatypes_test

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmdatatypes "github.com/tektronix/tm-data-types"
	"github.com/tektronix/tm-data-types/waveform"
)

type stubCodec struct{ id int }

func (stubCodec) Decode(io.Reader) (waveform.Waveform, error) { return nil, nil }
func (stubCodec) Encode(io.Writer, waveform.Waveform) error   { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	r := tmdatatypes.NewRegistry()
	_, ok := r.Get("dat")
	assert.False(t, ok)

	r.Register("dat", stubCodec{id: 1})
	got, ok := r.Get("dat")
	require.True(t, ok)
	assert.Equal(t, stubCodec{id: 1}, got)

	// Re-registering replaces.
	r.Register("dat", stubCodec{id: 2})
	got, _ = r.Get("dat")
	assert.Equal(t, stubCodec{id: 2}, got)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := tmdatatypes.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			ext := fmt.Sprintf("f%d", i)
			r.Register(ext, stubCodec{id: i})
			_, _ = r.Get(ext)
		}()
	}
	wg.Wait()
	assert.Len(t, r.Extensions(), 16)
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"wfm", "csv"} {
		_, ok := tmdatatypes.DefaultRegistry.Get(ext)
		assert.Truef(t, ok, "extension %s", ext)
	}
}
