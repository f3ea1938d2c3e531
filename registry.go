// SPDX-License-Identifier: Apache-2.0

package tmdatatypes

import (
	"io"
	"sync"

	"github.com/tektronix/tm-data-types/formats/csv"
	"github.com/tektronix/tm-data-types/formats/wfm"
	"github.com/tektronix/tm-data-types/waveform"
)

// Codec reads and writes one waveform file format.
type Codec interface {
	Decode(r io.Reader) (waveform.Waveform, error)
	Encode(w io.Writer, wf waveform.Waveform) error
}

// Registry maps file extensions (without the dot, lower case) to codecs.
type Registry struct {
	codecs map[string]Codec

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Codec),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(ext string, c Codec) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[ext] = c
}

func (r *Registry) Get(ext string) (Codec, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[ext]
	return c, ok
}

// Extensions returns the registered extensions in no particular order.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	return out
}

// wfmCodec pairs the wfm encoder and decoder behind the Codec interface.
type wfmCodec struct{}

func (wfmCodec) Decode(r io.Reader) (waveform.Waveform, error) {
	return wfm.Decoder{}.Decode(r)
}

func (wfmCodec) Encode(w io.Writer, wf waveform.Waveform) error {
	return wfm.Encoder{}.Encode(w, wf)
}

type csvCodec struct{}

func (csvCodec) Decode(r io.Reader) (waveform.Waveform, error) {
	return csv.Decoder{}.Decode(r)
}

func (csvCodec) Encode(w io.Writer, wf waveform.Waveform) error {
	return csv.Encoder{}.Encode(w, wf)
}

// DefaultRegistry holds the built-in codecs. ReadFile and WriteFile consult
// it; callers can register additional formats on it.
var DefaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register("wfm", wfmCodec{})
	r.Register("csv", csvCodec{})
	return r
}()
