package nn

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Network is a feed-forward stack of layers with the two attributes the
// evaluation harness queries: class count and expected input size.
type Network struct {
	name     string
	classes  int
	inH, inW int
	layers   []Layer
}

func NewNetwork(name string, classes, inH, inW int, layers ...Layer) *Network {
	return &Network{
		name:    name,
		classes: classes,
		inH:     inH,
		inW:     inW,
		layers:  layers,
	}
}

func (n *Network) Name() string { return n.name }

func (n *Network) Classes() int { return n.classes }

func (n *Network) InSize() (h, w int) { return n.inH, n.inW }

func (n *Network) Forward(src []float32) []float32 {
	var x = src
	for _, layer := range n.layers {
		x = layer.Forward(x)
	}
	return x
}

func (n *Network) params() []Param {
	var result []Param
	for _, layer := range n.layers {
		result = append(result, layer.Params()...)
	}
	return result
}

func (n *Network) ParamCount() int64 {
	var count int64
	for _, p := range n.params() {
		count += int64(len(p.Data))
	}
	return count
}

// Binary specification for the checkpoint file:
//
//   - all data is stored in little-endian layout
//   - 4 magic/version bytes: 73 (ASCII 'I'), 77 (ASCII 'M'), then the
//     major and minor parts of the format version (1, 0)
//   - 4 bytes (uint32) to denote the number of named parameter blobs
//   - for each blob: 2 bytes (uint16) name length, the name bytes,
//     4 bytes (uint32) element count, then the float32 elements
//
// Blobs are stored in layer construction order; names and sizes must
// match the architecture the checkpoint is loaded into.
func (n *Network) SaveWeights(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	var params = n.params()

	buf := []byte{73, 77, 1, 0}
	if _, err = f.Write(buf); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(buf, uint32(len(params)))
	if _, err = f.Write(buf); err != nil {
		return err
	}

	for _, p := range params {
		var nameBuf = make([]byte, 2+len(p.Name))
		binary.LittleEndian.PutUint16(nameBuf, uint16(len(p.Name)))
		copy(nameBuf[2:], p.Name)
		if _, err = f.Write(nameBuf); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(buf, uint32(len(p.Data)))
		if _, err = f.Write(buf); err != nil {
			return err
		}
		if err = writeSlice(f, p.Data); err != nil {
			return err
		}
	}
	return nil
}

// LoadWeights fills the network parameters from a checkpoint file. The
// checkpoint must describe exactly the same architecture.
func (n *Network) LoadWeights(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 4)
	if _, err = io.ReadFull(f, buf); err != nil {
		return err
	}
	if buf[0] != 73 || buf[1] != 77 {
		return errors.Errorf("%v: magic word does not match expected", file)
	}
	if buf[2] != 1 || buf[3] != 0 {
		return errors.Errorf("%v: checkpoint binary format is not supported", file)
	}

	if _, err = io.ReadFull(f, buf); err != nil {
		return err
	}
	var blobCount = int(binary.LittleEndian.Uint32(buf))

	var params = n.params()
	if blobCount != len(params) {
		return errors.Errorf("%v: checkpoint has %v parameter blobs, network %v expects %v",
			file, blobCount, n.name, len(params))
	}

	for _, p := range params {
		var lenBuf = make([]byte, 2)
		if _, err = io.ReadFull(f, lenBuf); err != nil {
			return err
		}
		var nameBuf = make([]byte, binary.LittleEndian.Uint16(lenBuf))
		if _, err = io.ReadFull(f, nameBuf); err != nil {
			return err
		}
		if string(nameBuf) != p.Name {
			return errors.Errorf("%v: checkpoint blob %q does not match expected %q",
				file, string(nameBuf), p.Name)
		}
		if _, err = io.ReadFull(f, buf); err != nil {
			return err
		}
		var count = int(binary.LittleEndian.Uint32(buf))
		if count != len(p.Data) {
			return errors.Errorf("%v: blob %q has %v elements, expected %v",
				file, p.Name, count, len(p.Data))
		}
		for i := range p.Data {
			if _, err = io.ReadFull(f, buf); err != nil {
				return err
			}
			p.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
	}
	return nil
}

func writeSlice(f io.Writer, data []float32) error {
	buf := make([]byte, 4)
	for j := range data {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(data[j]))
		if _, err := f.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
