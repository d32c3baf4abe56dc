package model

import "compress/zlib"
import "encoding/json"
import "io"
import "os"

import "github.com/pkg/errors"

type jsonParams struct {
	Units int         `json:"units"`
	J     [][]float64 `json:"j"`
	VK    []float64   `json:"vk"`
}

// WriteJson writes the parameters as json
func (p *Params) WriteJson(w io.Writer) error {
	return json.NewEncoder(w).Encode(jsonParams{Units: p.Units, J: p.Rows(), VK: p.VK()})
}

// ReadJson reads parameters from json, replacing the contents of p
func (p *Params) ReadJson(r io.Reader) error {
	var v jsonParams
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return errors.Wrap(err, "decode parameters")
	}
	if v.J == nil {
		v.J = [][]float64{}
	}
	q, err := FromJVK(v.J, v.VK)
	if err != nil {
		return err
	}
	if q.Units != v.Units {
		return errors.Wrapf(ErrShapeMismatch, "file declares %d units but J is %dx%d", v.Units, q.Units, q.Units)
	}
	*p = *q
	return nil
}

// WriteZlibToFile writes the parameters to a zlib compressed json file
func (p *Params) WriteZlibToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = p.WriteZlib(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteZlib writes the parameters to a writer as zlib compressed json
func (p *Params) WriteZlib(w io.Writer) error {
	zw := zlib.NewWriter(w)
	if err := p.WriteJson(zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadZlibFromFile reads the parameters from a zlib compressed json file
func (p *Params) ReadZlibFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = p.ReadZlib(file)
	file.Close()
	return err
}

// ReadZlib reads the parameters from a zlib compressed json reader
func (p *Params) ReadZlib(r io.Reader) error {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return errors.Wrap(err, "open zlib stream")
	}
	defer zr.Close()
	return p.ReadJson(zr)
}
