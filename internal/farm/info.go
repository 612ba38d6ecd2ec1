package farm

import (
	"bytes"

	"github.com/erizocosmico/bitsort/internal/bin"
)

// Info contains the worker server information.
type Info struct {
	// Version of the server.
	Version string
	// Addr of the server.
	Addr string
	// Proto version.
	Proto uint16
	// ActiveTasks currently executing.
	ActiveTasks uint32
	// ProcessedTasks since the server started.
	ProcessedTasks uint32
}

// Encode serializes the info.
func (i Info) Encode() ([]byte, error) {
	var w = bytes.NewBuffer(nil)
	if err := bin.WriteString(w, i.Version); err != nil {
		return nil, err
	}

	if err := bin.WriteString(w, i.Addr); err != nil {
		return nil, err
	}

	if err := bin.WriteUint16(w, i.Proto); err != nil {
		return nil, err
	}

	if err := bin.WriteUint32(w, i.ActiveTasks); err != nil {
		return nil, err
	}

	if err := bin.WriteUint32(w, i.ProcessedTasks); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Decode the info from the given data.
func (i *Info) Decode(data []byte) error {
	r := bytes.NewReader(data)
	var err error
	i.Version, err = bin.ReadString(r)
	if err != nil {
		return err
	}

	i.Addr, err = bin.ReadString(r)
	if err != nil {
		return err
	}

	i.Proto, err = bin.ReadUint16(r)
	if err != nil {
		return err
	}

	i.ActiveTasks, err = bin.ReadUint32(r)
	if err != nil {
		return err
	}

	i.ProcessedTasks, err = bin.ReadUint32(r)
	if err != nil {
		return err
	}

	return nil
}
